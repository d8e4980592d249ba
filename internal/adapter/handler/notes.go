package handler

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/errors"
	"github.com/johnquangdev/polyglot-minutes/internal/adapter/dto/common"
	notesdto "github.com/johnquangdev/polyglot-minutes/internal/adapter/dto/notes"
	"github.com/johnquangdev/polyglot-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/internal/usecase/notes"
	"github.com/johnquangdev/polyglot-minutes/pkg/runcontext"
	pkgvalidator "github.com/johnquangdev/polyglot-minutes/pkg/validator"
)

// Notes handles transcription, summary, action item and meeting notes endpoints
type Notes struct {
	svc            notes.Service
	maxUploadBytes int64
	requestTimeout time.Duration
	logger         *zap.Logger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(svc notes.Service, maxUploadBytes int64, requestTimeout time.Duration, logger *zap.Logger) *Notes {
	return &Notes{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Transcribe converts an uploaded recording to text
// @Summary      Transcribe audio
// @Description  Transcribes an uploaded meeting recording and returns the text with timed segments
// @Tags         Notes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Audio file (.mp3, .wav, .m4a, .ogg, .webm, .flac)"
// @Success      200   {object}  notesdto.TranscribeResponse
// @Failure      400   {object}  map[string]interface{}  "Missing audio file"
// @Failure      413   {object}  map[string]interface{}  "Audio file too large"
// @Failure      415   {object}  map[string]interface{}  "Unsupported audio format"
// @Failure      502   {object}  map[string]interface{}  "Transcription provider failed"
// @Router       /transcribe [post]
func (h *Notes) Transcribe(c echo.Context) error {
	filename, audio, err := h.readAudio(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := h.begin(c, "transcribe")
	defer cancel()

	transcript, err := h.svc.Transcribe(ctx, filename, audio)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscribeResponse(transcript))
}

// Summarize produces short and detailed summaries of a transcript
// @Summary      Summarize transcript
// @Description  Summarizes a transcript into bullet points and a paragraph in the target language (default en)
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        request  body      notesdto.SummarizeRequest  true  "Transcript and target language"
// @Success      200      {object}  notesdto.SummarizeResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid payload"
// @Failure      502      {object}  map[string]interface{}  "Summary provider failed"
// @Router       /summarize [post]
func (h *Notes) Summarize(c echo.Context) error {
	var req notesdto.SummarizeRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := h.begin(c, "summarize")
	defer cancel()

	summary, err := h.svc.Summarize(ctx, req.Transcript, req.TargetLang)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSummarizeResponse(summary))
}

// ExtractActions finds action items in a transcript
// @Summary      Extract action items
// @Description  Returns up to five action items with a High/Medium/Low priority. A transcript without any yields a single review reminder.
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        request  body      notesdto.ActionsRequest  true  "Transcript"
// @Success      200      {object}  notesdto.ActionsResponse
// @Failure      400      {object}  map[string]interface{}  "Missing transcript"
// @Router       /actions [post]
func (h *Notes) ExtractActions(c echo.Context) error {
	var req notesdto.ActionsRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := h.begin(c, "extract_actions")
	defer cancel()

	items := h.svc.ExtractActions(ctx, *req.Transcript)
	return HandleSuccess(h.logger, c, notesdto.ActionsResponse{Actions: items})
}

// GenerateNotes runs the full pipeline on an uploaded recording
// @Summary      Generate meeting notes
// @Description  Transcribes, summarizes and extracts action items from a recording in one call
// @Tags         Notes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "Audio file"
// @Param        target_lang  formData  string  false  "Summary language (ISO 639-1, default en)"
// @Success      200          {object}  entities.MeetingNotes
// @Failure      400          {object}  map[string]interface{}  "Missing audio file or invalid language"
// @Failure      413          {object}  map[string]interface{}  "Audio file too large"
// @Failure      415          {object}  map[string]interface{}  "Unsupported audio format"
// @Failure      502          {object}  map[string]interface{}  "AI provider failed"
// @Router       /notes [post]
func (h *Notes) GenerateNotes(c echo.Context) error {
	form := notesdto.GenerateNotesForm{TargetLang: strings.TrimSpace(c.FormValue("target_lang"))}
	if err := c.Validate(&form); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(pkgvalidator.Describe(err)))
	}

	filename, audio, err := h.readAudio(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := h.begin(c, "generate_notes")
	defer cancel()

	result, err := h.svc.GenerateNotes(ctx, filename, audio, form.TargetLang)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// ListNotes pages through stored meeting notes
// @Summary      List meeting notes
// @Description  Lists stored meeting notes, newest first
// @Tags         Notes
// @Produce      json
// @Param        page       query     int  false  "Page number (default 1)"
// @Param        page_size  query     int  false  "Page size (default 20, max 100)"
// @Success      200        {object}  common.ListResponse
// @Failure      503        {object}  map[string]interface{}  "Persistence not configured"
// @Router       /notes [get]
func (h *Notes) ListNotes(c echo.Context) error {
	var req notesdto.ListNotesRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	req.Normalize()

	items, total, err := h.svc.ListNotes(c.Request().Context(), req.PageSize, req.Offset())
	if err != nil {
		if !stdErrors.Is(err, entities.ErrNotesStoreAbsent) {
			err = errors.ErrDBQueryFailed("list meeting notes", err)
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data:       presenter.ToNotesListItems(items),
		Pagination: common.NewPagination(req.Page, req.PageSize, total),
	})
}

// GetNotes returns stored meeting notes
// @Summary      Get meeting notes
// @Tags         Notes
// @Produce      json
// @Param        id   path      string  true  "Notes ID (UUID)"
// @Success      200  {object}  entities.MeetingNotes
// @Failure      400  {object}  map[string]interface{}  "Invalid notes ID"
// @Failure      404  {object}  map[string]interface{}  "Notes not found"
// @Router       /notes/{id} [get]
func (h *Notes) GetNotes(c echo.Context) error {
	result, err := h.loadNotes(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// DownloadNotes returns stored notes as a JSON attachment
// @Summary      Download meeting notes
// @Description  Downloads the structured notes as meeting_notes.json
// @Tags         Notes
// @Produce      json
// @Param        id   path      string  true  "Notes ID (UUID)"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]interface{}  "Notes not found"
// @Router       /notes/{id}/download [get]
func (h *Notes) DownloadNotes(c echo.Context) error {
	id, err := parseNotesID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	payload, err := h.svc.ExportNotes(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, notesLookupError(id, err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", notes.ExportFilename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, payload)
}

// Minutes renders stored notes as Markdown
// @Summary      Meeting minutes
// @Description  Renders summary, action items and transcript as a Markdown document
// @Tags         Notes
// @Produce      text/markdown
// @Param        id   path      string  true  "Notes ID (UUID)"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]interface{}  "Notes not found"
// @Router       /notes/{id}/minutes [get]
func (h *Notes) Minutes(c echo.Context) error {
	result, err := h.loadNotes(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(presenter.RenderMinutes(result)))
}

func (h *Notes) loadNotes(c echo.Context) (*entities.MeetingNotes, error) {
	id, err := parseNotesID(c)
	if err != nil {
		return nil, err
	}

	result, err := h.svc.GetNotes(c.Request().Context(), id)
	if err != nil {
		return nil, notesLookupError(id, err)
	}
	return result, nil
}

func (h *Notes) begin(c echo.Context, op string) (context.Context, context.CancelFunc) {
	return runcontext.Begin(c.Request().Context(), getRequestID(c), op, h.requestTimeout)
}

func (h *Notes) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(pkgvalidator.Describe(err))
	}
	return nil
}

// readAudio loads the "file" form part, enforcing extension and size limits
func (h *Notes) readAudio(c echo.Context) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.ErrMissingAudioFile()
	}

	filename := filepath.Base(fh.Filename)
	if !notes.IsSupportedAudio(filename) {
		return "", nil, errors.ErrUnsupportedAudioFormat(strings.ToLower(filepath.Ext(filename)))
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return "", nil, errors.ErrAudioTooLarge(fh.Size, h.maxUploadBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, errors.ErrInternal(err)
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxUploadBytes > 0 {
		r = io.LimitReader(f, h.maxUploadBytes+1)
	}
	audio, err := io.ReadAll(r)
	if err != nil {
		return "", nil, errors.ErrInternal(err)
	}
	if h.maxUploadBytes > 0 && int64(len(audio)) > h.maxUploadBytes {
		return "", nil, errors.ErrAudioTooLarge(int64(len(audio)), h.maxUploadBytes)
	}
	if len(audio) == 0 {
		return "", nil, errors.ErrMissingAudioFile()
	}

	return filename, audio, nil
}

func parseNotesID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("Invalid notes ID")
	}
	return id, nil
}

func notesLookupError(id uuid.UUID, err error) error {
	if stdErrors.Is(err, entities.ErrNotesNotFound) {
		return errors.ErrNotesNotFound(id.String())
	}
	return err
}
