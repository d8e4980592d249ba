package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/internal/domain/repositories"
)

// NotesRepository handles meeting notes data operations
type NotesRepository struct {
	db *gorm.DB
}

var _ repositories.NotesRepository = (*NotesRepository)(nil)

// NewNotesRepository creates a new notes repository
func NewNotesRepository(db *gorm.DB) *NotesRepository {
	return &NotesRepository{db: db}
}

// Create inserts new meeting notes
func (r *NotesRepository) Create(ctx context.Context, notes *entities.MeetingNotes) error {
	if notes == nil {
		return errors.New("meeting notes cannot be nil")
	}
	return r.db.WithContext(ctx).Create(notes).Error
}

// FindByID retrieves meeting notes by ID
func (r *NotesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingNotes, error) {
	var notes entities.MeetingNotes
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&notes).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notes, nil
}

// List returns a page of notes, newest first, with the total count
func (r *NotesRepository) List(ctx context.Context, limit, offset int) ([]*entities.MeetingNotes, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.MeetingNotes{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*entities.MeetingNotes
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
