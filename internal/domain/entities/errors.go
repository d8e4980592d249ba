package entities

import "errors"

// Domain errors
var (
	ErrNotesNotFound       = errors.New("meeting notes not found")
	ErrNotesStoreAbsent    = errors.New("meeting notes store not configured")
	ErrEmptyAudio          = errors.New("audio payload is empty")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrSummaryFailed       = errors.New("summary failed")
)
