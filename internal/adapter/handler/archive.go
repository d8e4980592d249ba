package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/errors"
	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/polyglot-minutes/internal/usecase/notes"
)

const audioURLExpiry = time.Hour

// ArchiveStore is the object storage surface used by the archive endpoints
type ArchiveStore interface {
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	GetBucketInfo(ctx context.Context) (*storage.BucketInfo, error)
}

// Archive exposes archived recordings kept in object storage
type Archive struct {
	store  ArchiveStore
	svc    notes.Service
	logger *zap.Logger
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(store ArchiveStore, svc notes.Service, logger *zap.Logger) *Archive {
	return &Archive{store: store, svc: svc, logger: logger}
}

// AudioURL generates a download URL for the recording behind stored notes
// @Summary      Recording download URL
// @Description  Generates a presigned URL (valid one hour) for the archived recording of a notes entry
// @Tags         Archive
// @Produce      json
// @Param        id   path      string  true  "Notes ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Download URL"
// @Failure      404  {object}  map[string]interface{}  "Notes or recording not found"
// @Failure      500  {object}  map[string]interface{}  "Failed to generate URL"
// @Router       /notes/{id}/audio [get]
func (h *Archive) AudioURL(c echo.Context) error {
	id, err := parseNotesID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	result, err := h.svc.GetNotes(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, notesLookupError(id, err))
	}
	if result.AudioObject == "" {
		return HandleError(h.logger, c, errors.ErrNotFound("Archived recording"))
	}

	url, err := h.store.GetFileURL(ctx, result.AudioObject, audioURLExpiry)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to generate download URL",
				zap.String("object", result.AudioObject),
				zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"object":     result.AudioObject,
		"url":        url,
		"expires_in": int(audioURLExpiry.Seconds()),
	})
}

// BucketInfo reports the archive bucket status
// @Summary      Archive bucket info
// @Description  Returns the bucket name, endpoint and number of archived recordings and notes
// @Tags         Archive
// @Produce      json
// @Success      200  {object}  storage.BucketInfo
// @Failure      500  {object}  map[string]interface{}  "Failed to get bucket info"
// @Router       /storage/info [get]
func (h *Archive) BucketInfo(c echo.Context) error {
	info, err := h.store.GetBucketInfo(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("bucket info", err))
	}
	return HandleSuccess(h.logger, c, info)
}
