package provider

import (
	"context"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

// StaticSummarizer returns placeholder text until a real model is plugged in
type StaticSummarizer struct{}

// NewStaticSummarizer creates the placeholder summarizer
func NewStaticSummarizer() *StaticSummarizer {
	return &StaticSummarizer{}
}

// Name returns the provider name
func (s *StaticSummarizer) Name() string {
	return config.SummarizerStatic
}

// Summarize ignores its input
func (s *StaticSummarizer) Summarize(_ context.Context, _ string, _ string) (*entities.Summary, error) {
	return &entities.Summary{
		Short:    []string{"Dummy bullet point 1", "Dummy bullet point 2"},
		Detailed: "This is a dummy detailed summary.",
	}, nil
}
