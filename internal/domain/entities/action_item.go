package entities

// Priority ranks an action item
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ActionItem is a short task extracted from a meeting transcript
type ActionItem struct {
	Item     string   `json:"item"`
	Priority Priority `json:"priority"`
}

// FallbackActionItem is returned when a transcript yields no action items
func FallbackActionItem() ActionItem {
	return ActionItem{
		Item:     "Review the meeting transcript for action items",
		Priority: PriorityMedium,
	}
}
