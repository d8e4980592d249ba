package provider

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

// WhisperTranscriber transcribes audio through an OpenAI-compatible
// /audio/transcriptions endpoint (OpenAI or a self-hosted Whisper server)
type WhisperTranscriber struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
	logger *zap.Logger
}

// NewWhisperTranscriber creates a Whisper transcriber from config
func NewWhisperTranscriber(cfg *config.WhisperConfig, logger *zap.Logger) *WhisperTranscriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		retry:  DefaultRetryPolicy(),
		logger: logger,
	}
}

// Name returns the provider name
func (w *WhisperTranscriber) Name() string {
	return config.TranscriberWhisper
}

// Transcribe sends the audio and maps the verbose JSON reply to a Transcript
func (w *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio []byte) (*entities.Transcript, error) {
	if len(audio) == 0 {
		return nil, entities.ErrEmptyAudio
	}

	var resp openai.AudioResponse
	err := withRetry(ctx, w.retry, w.logger, "whisper.transcribe", func() error {
		var err error
		resp, err = w.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    w.model,
			FilePath: filepath.Base(filename),
			Reader:   bytes.NewReader(audio),
			Format:   openai.AudioResponseFormatVerboseJSON,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription failed: %w", err)
	}

	transcript := &entities.Transcript{
		Text:      strings.TrimSpace(resp.Text),
		Language:  resp.Language,
		Segments:  make([]entities.Segment, 0, len(resp.Segments)),
		ModelUsed: w.model,
	}
	for _, s := range resp.Segments {
		transcript.Segments = append(transcript.Segments, entities.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}

	if w.logger != nil {
		w.logger.Info("whisper transcription completed",
			zap.String("filename", filename),
			zap.String("language", transcript.Language),
			zap.Int("segments", len(transcript.Segments)),
			zap.Int("text_length", len(transcript.Text)),
		)
	}

	return transcript, nil
}
