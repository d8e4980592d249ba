package notes

// SummarizeRequest is the body of POST /v1/summarize
type SummarizeRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	TargetLang string `json:"target_lang,omitempty" validate:"omitempty,lang"`
}

// ActionsRequest is the body of POST /v1/actions. An empty transcript is
// accepted; only an absent one is rejected.
type ActionsRequest struct {
	Transcript *string `json:"transcript" validate:"required"`
}

// GenerateNotesForm carries the non-file fields of POST /v1/notes
type GenerateNotesForm struct {
	TargetLang string `form:"target_lang" validate:"omitempty,lang"`
}

// ListNotesRequest holds pagination query parameters
type ListNotesRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// Normalize applies pagination defaults
func (r *ListNotesRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
}

// Offset returns the row offset of the requested page
func (r *ListNotesRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}
