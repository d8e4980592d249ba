package provider

import (
	"bytes"
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

// AssemblyAITranscriber transcribes audio with the official AssemblyAI SDK
type AssemblyAITranscriber struct {
	client       *aai.Client
	languageCode string
	retry        RetryPolicy
	logger       *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber from config
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{
		client:       aai.NewClient(cfg.APIKey),
		languageCode: cfg.LanguageCode,
		retry:        DefaultRetryPolicy(),
		logger:       logger,
	}
}

// Name returns the provider name
func (a *AssemblyAITranscriber) Name() string {
	return config.TranscriberAssemblyAI
}

// Transcribe uploads the audio and waits for the finished transcript
func (a *AssemblyAITranscriber) Transcribe(ctx context.Context, filename string, audio []byte) (*entities.Transcript, error) {
	if len(audio) == 0 {
		return nil, entities.ErrEmptyAudio
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if a.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(a.languageCode)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	if a.logger != nil {
		a.logger.Info("uploading audio to AssemblyAI",
			zap.String("filename", filename),
			zap.Int("bytes", len(audio)),
		)
	}

	var transcript aai.Transcript
	err := withRetry(ctx, a.retry, a.logger, "assemblyai.transcribe", func() error {
		var err error
		transcript, err = a.client.Transcripts.TranscribeFromReader(ctx, bytes.NewReader(audio), params)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return nil, fmt.Errorf("assemblyai reported error: %s", aai.ToString(transcript.Error))
	}

	result := transcriptFromAssemblyAI(transcript)

	if a.logger != nil {
		a.logger.Info("assemblyai transcription completed",
			zap.String("transcript_id", aai.ToString(transcript.ID)),
			zap.String("language", result.Language),
			zap.Int("segments", len(result.Segments)),
		)
	}

	return result, nil
}

// transcriptFromAssemblyAI maps utterances to segments, converting ms to seconds
func transcriptFromAssemblyAI(t aai.Transcript) *entities.Transcript {
	result := &entities.Transcript{
		Text:      aai.ToString(t.Text),
		Language:  string(t.LanguageCode),
		Segments:  make([]entities.Segment, 0, len(t.Utterances)),
		ModelUsed: "assemblyai",
	}

	for _, utt := range t.Utterances {
		seg := entities.Segment{
			Text:    aai.ToString(utt.Text),
			Speaker: aai.ToString(utt.Speaker),
		}
		if utt.Start != nil {
			seg.Start = float64(*utt.Start) / 1000.0
		}
		if utt.End != nil {
			seg.End = float64(*utt.End) / 1000.0
		}
		result.Segments = append(result.Segments, seg)
	}

	return result
}
