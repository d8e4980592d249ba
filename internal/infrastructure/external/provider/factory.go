package provider

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/internal/usecase/notes"
	pkgai "github.com/johnquangdev/polyglot-minutes/pkg/ai"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

// NewTranscriber creates the speech-to-text provider selected in config
func NewTranscriber(cfg *config.Config, logger *zap.Logger) (notes.Transcriber, error) {
	switch cfg.Transcriber.Provider {
	case config.TranscriberWhisper:
		return NewWhisperTranscriber(&cfg.Whisper, logger), nil
	case config.TranscriberAssemblyAI:
		return NewAssemblyAITranscriber(&cfg.Assembly, logger), nil
	default:
		return nil, fmt.Errorf("unsupported transcriber provider: %s. Supported: %s, %s",
			cfg.Transcriber.Provider, config.TranscriberWhisper, config.TranscriberAssemblyAI)
	}
}

// NewSummarizer creates the summary provider selected in config
func NewSummarizer(cfg *config.Config, logger *zap.Logger) (notes.Summarizer, error) {
	switch cfg.Summarizer.Provider {
	case config.SummarizerStatic:
		return NewStaticSummarizer(), nil
	case config.SummarizerGroq:
		return NewGroqSummarizer(pkgai.NewGroqClient(&cfg.Groq), logger), nil
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s. Supported: %s, %s",
			cfg.Summarizer.Provider, config.SummarizerStatic, config.SummarizerGroq)
	}
}
