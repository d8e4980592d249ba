package presenter

import (
	"fmt"
	"strings"

	notesdto "github.com/johnquangdev/polyglot-minutes/internal/adapter/dto/notes"
	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
)

// ToTranscribeResponse converts a Transcript to TranscribeResponse DTO
func ToTranscribeResponse(t *entities.Transcript) *notesdto.TranscribeResponse {
	if t == nil {
		return nil
	}
	segments := t.Segments
	if segments == nil {
		segments = []entities.Segment{}
	}
	return &notesdto.TranscribeResponse{
		Transcript: t.Text,
		Language:   t.Language,
		Segments:   segments,
	}
}

// ToSummarizeResponse converts a Summary to SummarizeResponse DTO
func ToSummarizeResponse(s *entities.Summary) *notesdto.SummarizeResponse {
	if s == nil {
		return nil
	}
	short := s.Short
	if short == nil {
		short = []string{}
	}
	return &notesdto.SummarizeResponse{
		SummaryShort:    short,
		SummaryDetailed: s.Detailed,
	}
}

// ToNotesListItems converts stored notes to list rows
func ToNotesListItems(items []*entities.MeetingNotes) []notesdto.NotesListItem {
	out := make([]notesdto.NotesListItem, 0, len(items))
	for _, n := range items {
		if n == nil {
			continue
		}
		out = append(out, notesdto.NotesListItem{
			ID:             n.ID,
			Filename:       n.Filename,
			Language:       n.Language,
			TargetLanguage: n.TargetLanguage,
			ActionCount:    len(n.Actions),
			CreatedAt:      n.CreatedAt,
		})
	}
	return out
}

// FormatActionItem renders one action as "<item> (<priority>)"
func FormatActionItem(a entities.ActionItem) string {
	return fmt.Sprintf("%s (%s)", a.Item, a.Priority)
}

// RenderMinutes renders meeting notes as a Markdown document
func RenderMinutes(n *entities.MeetingNotes) string {
	if n == nil {
		return ""
	}

	var b strings.Builder

	title := "Meeting Minutes"
	if n.Filename != "" {
		title += ": " + n.Filename
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **ID:** %s\n", n.ID)
	fmt.Fprintf(&b, "- **Created:** %s\n", n.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	if n.Language != "" {
		fmt.Fprintf(&b, "- **Spoken language:** %s\n", n.Language)
	}
	if n.TargetLanguage != "" {
		fmt.Fprintf(&b, "- **Summary language:** %s\n", n.TargetLanguage)
	}

	b.WriteString("\n## Summary\n\n")
	for _, bullet := range n.SummaryShort {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	if n.SummaryDetailed != "" {
		if len(n.SummaryShort) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(n.SummaryDetailed)
		b.WriteString("\n")
	}

	b.WriteString("\n## Action Items\n\n")
	for _, a := range n.Actions {
		fmt.Fprintf(&b, "- %s\n", FormatActionItem(a))
	}

	b.WriteString("\n## Transcript\n\n")
	b.WriteString(strings.TrimSpace(n.Transcript))
	b.WriteString("\n")

	return b.String()
}
