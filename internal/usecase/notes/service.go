package notes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/internal/domain/repositories"
	"github.com/johnquangdev/polyglot-minutes/internal/usecase/actions"
	"github.com/johnquangdev/polyglot-minutes/pkg/runcontext"
)

const (
	// DefaultTargetLanguage is used when a caller omits target_lang
	DefaultTargetLanguage = "en"

	// ExportFilename is the attachment name of downloaded notes
	ExportFilename = "meeting_notes.json"

	actionsCachePrefix = "actions:"
	defaultActionsTTL  = time.Hour
	maxParallelUploads = 2
)

// Transcriber turns recorded audio into text
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, filename string, audio []byte) (*entities.Transcript, error)
}

// Summarizer condenses a transcript into short and detailed summaries
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, transcript, targetLang string) (*entities.Summary, error)
}

// Cache stores extracted action items keyed by transcript hash
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// ObjectStore archives uploaded audio and generated notes
type ObjectStore interface {
	UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) error
}

// Recorder receives pipeline measurements
type Recorder interface {
	ObserveActions(items []entities.ActionItem, fallback bool)
	ObserveProvider(provider, op string, started time.Time, err error)
	ObserveCache(result string)
}

// Service defines the meeting notes operations
type Service interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (*entities.Transcript, error)
	Summarize(ctx context.Context, transcript, targetLang string) (*entities.Summary, error)
	ExtractActions(ctx context.Context, transcript string) []entities.ActionItem
	GenerateNotes(ctx context.Context, filename string, audio []byte, targetLang string) (*entities.MeetingNotes, error)
	GetNotes(ctx context.Context, id uuid.UUID) (*entities.MeetingNotes, error)
	ListNotes(ctx context.Context, limit, offset int) ([]*entities.MeetingNotes, int64, error)
	ExportNotes(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type notesService struct {
	transcriber     Transcriber
	summarizer      Summarizer
	extractor       *actions.Extractor
	repo            repositories.NotesRepository
	cache           Cache
	store           ObjectStore
	recorder        Recorder
	actionsTTL      time.Duration
	logger          *zap.Logger
	uploadSemaphore chan struct{}
}

// NewService constructs the notes service. repo, cache, store and recorder
// are optional; a nil extractor uses the default cue table.
func NewService(
	transcriber Transcriber,
	summarizer Summarizer,
	extractor *actions.Extractor,
	repo repositories.NotesRepository,
	cache Cache,
	store ObjectStore,
	recorder Recorder,
	actionsTTL time.Duration,
	logger *zap.Logger,
) Service {
	if extractor == nil {
		extractor = actions.NewExtractor()
	}
	if actionsTTL <= 0 {
		actionsTTL = defaultActionsTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &notesService{
		transcriber:     transcriber,
		summarizer:      summarizer,
		extractor:       extractor,
		repo:            repo,
		cache:           cache,
		store:           store,
		recorder:        recorder,
		actionsTTL:      actionsTTL,
		logger:          logger,
		uploadSemaphore: make(chan struct{}, maxParallelUploads),
	}
}

// Transcribe runs the configured speech-to-text provider
func (s *notesService) Transcribe(ctx context.Context, filename string, audio []byte) (*entities.Transcript, error) {
	if len(audio) == 0 {
		return nil, entities.ErrEmptyAudio
	}

	started := time.Now()
	transcript, err := s.transcriber.Transcribe(ctx, filename, audio)
	s.recorder.ObserveProvider(s.transcriber.Name(), "transcribe", started, err)
	if err != nil {
		s.logger.Error("transcription failed",
			zap.String("provider", s.transcriber.Name()),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", entities.ErrTranscriptionFailed, err)
	}
	if transcript == nil {
		s.logger.Error("transcriber returned no transcript",
			zap.String("provider", s.transcriber.Name()),
			zap.String("filename", filename),
		)
		return nil, fmt.Errorf("%w: %s returned no transcript", entities.ErrTranscriptionFailed, s.transcriber.Name())
	}
	if transcript.Segments == nil {
		transcript.Segments = []entities.Segment{}
	}
	return transcript, nil
}

// Summarize runs the configured summary provider
func (s *notesService) Summarize(ctx context.Context, transcript, targetLang string) (*entities.Summary, error) {
	targetLang = normalizeLanguage(targetLang)

	started := time.Now()
	summary, err := s.summarizer.Summarize(ctx, transcript, targetLang)
	s.recorder.ObserveProvider(s.summarizer.Name(), "summarize", started, err)
	if err != nil {
		s.logger.Error("summary failed",
			zap.String("provider", s.summarizer.Name()),
			zap.String("target_lang", targetLang),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", entities.ErrSummaryFailed, err)
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: %s returned no summary", entities.ErrSummaryFailed, s.summarizer.Name())
	}
	if summary.Short == nil {
		summary.Short = []string{}
	}
	return summary, nil
}

// ExtractActions returns action items for transcript. Results are cached by
// the SHA-256 of the transcript; cache failures never fail the call.
func (s *notesService) ExtractActions(ctx context.Context, transcript string) []entities.ActionItem {
	key := actionsCacheKey(transcript)

	if s.cache != nil {
		if cached, ok := s.cachedActions(ctx, key); ok {
			s.recorder.ObserveActions(cached, isFallback(cached))
			return cached
		}
	}

	items := s.extractor.Extract(transcript)
	s.recorder.ObserveActions(items, isFallback(items))

	if s.cache != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, string(payload), s.actionsTTL); err != nil {
				s.logger.Warn("failed to cache action items", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return items
}

func (s *notesService) cachedActions(ctx context.Context, key string) ([]entities.ActionItem, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.recorder.ObserveCache("error")
		s.logger.Warn("action cache lookup failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		s.recorder.ObserveCache("miss")
		return nil, false
	}

	var items []entities.ActionItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || len(items) == 0 {
		s.recorder.ObserveCache("error")
		s.logger.Warn("discarding malformed cached action items", zap.String("key", key))
		return nil, false
	}
	s.recorder.ObserveCache("hit")
	return items, true
}

// GenerateNotes transcribes, summarizes and extracts actions in one pass.
// Archiving and persistence are best effort.
func (s *notesService) GenerateNotes(ctx context.Context, filename string, audio []byte, targetLang string) (*entities.MeetingNotes, error) {
	targetLang = normalizeLanguage(targetLang)

	transcript, err := s.Transcribe(ctx, filename, audio)
	if err != nil {
		return nil, err
	}

	summary, err := s.Summarize(ctx, transcript.Text, targetLang)
	if err != nil {
		return nil, err
	}

	items := s.ExtractActions(ctx, transcript.Text)
	notes := entities.NewMeetingNotes(filename, targetLang, transcript, summary, items)

	if s.store != nil {
		objectName := audioObjectName(notes.ID, filename)
		if err := s.upload(ctx, objectName, audio, audioContentType(filename)); err != nil {
			s.logger.Warn("failed to archive audio",
				zap.String("notes_id", notes.ID.String()),
				zap.String("object", objectName),
				zap.Error(err),
			)
		} else {
			notes.AudioObject = objectName
		}
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, notes); err != nil {
			s.logger.Error("failed to persist meeting notes", append(runcontext.LogFields(ctx),
				zap.String("notes_id", notes.ID.String()),
				zap.Error(err),
			)...)
		}
	}

	if s.store != nil {
		if payload, err := exportJSON(notes); err == nil {
			if err := s.upload(ctx, notesObjectName(notes.ID), payload, "application/json"); err != nil {
				s.logger.Warn("failed to archive notes", zap.String("notes_id", notes.ID.String()), zap.Error(err))
			}
		}
	}

	s.logger.Info("✅ Meeting notes generated", append(runcontext.LogFields(ctx),
		zap.String("notes_id", notes.ID.String()),
		zap.String("filename", filename),
		zap.String("language", notes.Language),
		zap.String("target_lang", targetLang),
		zap.Int("actions", len(items)),
	)...)
	return notes, nil
}

// upload bounds concurrent archive uploads
func (s *notesService) upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	select {
	case s.uploadSemaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.uploadSemaphore }()

	return s.store.UploadBytes(ctx, objectName, data, contentType)
}

// GetNotes loads previously generated notes
func (s *notesService) GetNotes(ctx context.Context, id uuid.UUID) (*entities.MeetingNotes, error) {
	if s.repo == nil {
		return nil, entities.ErrNotesStoreAbsent
	}

	notes, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting notes: %w", err)
	}
	if notes == nil {
		return nil, entities.ErrNotesNotFound
	}
	return notes, nil
}

// ListNotes pages through stored notes, newest first
func (s *notesService) ListNotes(ctx context.Context, limit, offset int) ([]*entities.MeetingNotes, int64, error) {
	if s.repo == nil {
		return nil, 0, entities.ErrNotesStoreAbsent
	}

	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meeting notes: %w", err)
	}
	return items, total, nil
}

// ExportNotes renders stored notes as an indented JSON document
func (s *notesService) ExportNotes(ctx context.Context, id uuid.UUID) ([]byte, error) {
	notes, err := s.GetNotes(ctx, id)
	if err != nil {
		return nil, err
	}
	return exportJSON(notes)
}

func exportJSON(notes *entities.MeetingNotes) ([]byte, error) {
	payload, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode meeting notes: %w", err)
	}
	return payload, nil
}

func actionsCacheKey(transcript string) string {
	sum := sha256.Sum256([]byte(transcript))
	return actionsCachePrefix + hex.EncodeToString(sum[:])
}

func isFallback(items []entities.ActionItem) bool {
	return len(items) == 1 && items[0] == entities.FallbackActionItem()
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultTargetLanguage
	}
	return lang
}

func audioObjectName(id uuid.UUID, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "audio"
	}
	return fmt.Sprintf("audio/%s/%s", id, base)
}

func notesObjectName(id uuid.UUID) string {
	return fmt.Sprintf("notes/%s/%s", id, ExportFilename)
}

var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
	".flac": "audio/flac",
}

// IsSupportedAudio reports whether filename has an accepted audio extension
func IsSupportedAudio(filename string) bool {
	_, ok := audioContentTypes[strings.ToLower(path.Ext(filename))]
	return ok
}

// SupportedAudioExtensions lists accepted extensions, sorted
func SupportedAudioExtensions() []string {
	exts := make([]string, 0, len(audioContentTypes))
	for ext := range audioContentTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func audioContentType(filename string) string {
	if ct, ok := audioContentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

type nopRecorder struct{}

func (nopRecorder) ObserveActions([]entities.ActionItem, bool)       {}
func (nopRecorder) ObserveProvider(string, string, time.Time, error) {}
func (nopRecorder) ObserveCache(string)                              {}
