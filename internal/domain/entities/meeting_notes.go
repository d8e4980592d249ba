package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingNotes is the combined result of transcribing, summarizing and
// extracting action items from one uploaded recording
type MeetingNotes struct {
	ID              uuid.UUID                       `json:"id" gorm:"type:uuid;primary_key"`
	Filename        string                          `json:"filename" gorm:"type:varchar(255)"`
	Language        string                          `json:"language,omitempty" gorm:"type:varchar(20)"`
	TargetLanguage  string                          `json:"target_lang" gorm:"type:varchar(20)"`
	Transcript      string                          `json:"transcript" gorm:"type:text"`
	Segments        datatypes.JSONSlice[Segment]    `json:"segments" gorm:"type:jsonb"`
	SummaryShort    datatypes.JSONSlice[string]     `json:"summary_short" gorm:"type:jsonb"`
	SummaryDetailed string                          `json:"summary_detailed" gorm:"type:text"`
	Actions         datatypes.JSONSlice[ActionItem] `json:"actions" gorm:"type:jsonb"`
	AudioObject     string                          `json:"audio_object,omitempty" gorm:"type:varchar(512)"`
	ModelUsed       string                          `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	CreatedAt       time.Time                       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MeetingNotes) TableName() string {
	return "meeting_notes"
}

// NewMeetingNotes assembles notes from the collaborator outputs
func NewMeetingNotes(filename, targetLang string, transcript *Transcript, summary *Summary, actions []ActionItem) *MeetingNotes {
	notes := &MeetingNotes{
		ID:             uuid.New(),
		Filename:       filename,
		TargetLanguage: targetLang,
		Segments:       datatypes.JSONSlice[Segment]{},
		SummaryShort:   datatypes.JSONSlice[string]{},
		Actions:        datatypes.JSONSlice[ActionItem](actions),
		CreatedAt:      time.Now().UTC(),
	}
	if transcript != nil {
		notes.Transcript = transcript.Text
		notes.Language = transcript.Language
		notes.ModelUsed = transcript.ModelUsed
		if transcript.Segments != nil {
			notes.Segments = datatypes.JSONSlice[Segment](transcript.Segments)
		}
	}
	if summary != nil {
		notes.SummaryDetailed = summary.Detailed
		if summary.Short != nil {
			notes.SummaryShort = datatypes.JSONSlice[string](summary.Short)
		}
	}
	return notes
}
