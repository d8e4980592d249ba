package entities

// Summary is the short and detailed summary of a transcript
type Summary struct {
	Short    []string `json:"summary_short"`
	Detailed string   `json:"summary_detailed"`
}
