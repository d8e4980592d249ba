package notes

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
)

// HealthResponse is returned by the liveness endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// TranscribeResponse is returned by POST /v1/transcribe
type TranscribeResponse struct {
	Transcript string             `json:"transcript"`
	Language   string             `json:"language,omitempty"`
	Segments   []entities.Segment `json:"segments"`
}

// SummarizeResponse is returned by POST /v1/summarize
type SummarizeResponse struct {
	SummaryShort    []string `json:"summary_short"`
	SummaryDetailed string   `json:"summary_detailed"`
}

// ActionsResponse is returned by POST /v1/actions
type ActionsResponse struct {
	Actions []entities.ActionItem `json:"actions"`
}

// NotesListItem is a compact row of GET /v1/notes
type NotesListItem struct {
	ID             uuid.UUID `json:"id"`
	Filename       string    `json:"filename"`
	Language       string    `json:"language,omitempty"`
	TargetLanguage string    `json:"target_lang"`
	ActionCount    int       `json:"action_count"`
	CreatedAt      time.Time `json:"created_at"`
}
