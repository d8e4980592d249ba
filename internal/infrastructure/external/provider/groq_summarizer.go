package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	pkgai "github.com/johnquangdev/polyglot-minutes/pkg/ai"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

const summarySystemPrompt = `You summarize meeting transcripts.
Reply with a JSON object of the form {"summary_short": ["..."], "summary_detailed": "..."}.
summary_short holds 3 to 5 concise bullet points; summary_detailed is one paragraph.
Write both in the language with ISO 639-1 code %q.`

// chatClient is the part of the Groq client the summarizer needs
type chatClient interface {
	ChatJSON(ctx context.Context, messages []pkgai.ChatMessage) (string, error)
}

// GroqSummarizer asks a Groq-hosted LLM for a short and a detailed summary
type GroqSummarizer struct {
	client chatClient
	retry  RetryPolicy
	logger *zap.Logger
}

// NewGroqSummarizer creates a summarizer backed by the given chat client
func NewGroqSummarizer(client chatClient, logger *zap.Logger) *GroqSummarizer {
	return &GroqSummarizer{
		client: client,
		retry:  DefaultRetryPolicy(),
		logger: logger,
	}
}

// Name returns the provider name
func (g *GroqSummarizer) Name() string {
	return config.SummarizerGroq
}

// Summarize requests a JSON summary in targetLang
func (g *GroqSummarizer) Summarize(ctx context.Context, transcript, targetLang string) (*entities.Summary, error) {
	messages := []pkgai.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(summarySystemPrompt, targetLang)},
		{Role: "user", Content: transcript},
	}

	var summary *entities.Summary
	err := withRetry(ctx, g.retry, g.logger, "groq.summarize", func() error {
		content, err := g.client.ChatJSON(ctx, messages)
		if err != nil {
			return err
		}
		summary, err = parseSummary(content)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("groq summary failed: %w", err)
	}

	if g.logger != nil {
		g.logger.Info("groq summary generated",
			zap.String("target_lang", targetLang),
			zap.Int("bullets", len(summary.Short)),
			zap.Int("detailed_length", len(summary.Detailed)),
		)
	}
	return summary, nil
}

type summaryParseError struct {
	err error
}

func (e *summaryParseError) Error() string {
	return fmt.Sprintf("failed to parse summary response: %v", e.err)
}

func (e *summaryParseError) Unwrap() error {
	return e.err
}

// parseSummary decodes the model reply; markdown code fences are tolerated
func parseSummary(content string) (*entities.Summary, error) {
	var summary entities.Summary
	if err := json.Unmarshal([]byte(extractJSON(content)), &summary); err != nil {
		return nil, &summaryParseError{err: err}
	}
	if summary.Detailed == "" && len(summary.Short) == 0 {
		return nil, &summaryParseError{err: fmt.Errorf("empty summary")}
	}
	if summary.Short == nil {
		summary.Short = []string{}
	}
	return &summary, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
