package entities

// Segment represents a contiguous speech segment
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Transcript is the text produced by a speech-to-text provider
type Transcript struct {
	Text      string    `json:"transcript"`
	Language  string    `json:"language,omitempty"`
	Segments  []Segment `json:"segments"`
	ModelUsed string    `json:"model_used,omitempty"`
}
