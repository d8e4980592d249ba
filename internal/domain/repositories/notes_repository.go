package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
)

// NotesRepository defines persistence operations for meeting notes
type NotesRepository interface {
	Create(ctx context.Context, notes *entities.MeetingNotes) error
	// FindByID returns nil, nil when no notes exist for id
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingNotes, error)
	List(ctx context.Context, limit, offset int) ([]*entities.MeetingNotes, int64, error)
}
