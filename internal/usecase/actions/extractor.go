// Package actions turns free-form meeting text into a short, ranked list of
// action items using cue phrases and priority keywords.
package actions

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
)

const (
	// DefaultLimit caps the number of returned action items.
	DefaultLimit = 5

	minCaptureLen = 10
	minItemLen    = 6
)

// Extractor finds action items in transcripts. It holds no mutable state and
// is safe for concurrent use.
type Extractor struct {
	cues  []*compiledCue
	limit int
}

type compiledCue struct {
	Cue
	regex *regexp.Regexp
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLimit overrides the maximum number of returned items. Values below one
// are ignored.
func WithLimit(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithCues replaces the cue list. Order is scan order. An empty list keeps
// the defaults; a cue that does not compile panics, like a bad default would.
func WithCues(cues []Cue) Option {
	return func(e *Extractor) {
		compiled, err := compileCues(cues)
		if err != nil {
			panic(err)
		}
		if len(compiled) > 0 {
			e.cues = compiled
		}
	}
}

var defaultExtractor = NewExtractor()

// Extract runs the default extractor over a transcript.
func Extract(transcript string) []entities.ActionItem {
	return defaultExtractor.Extract(transcript)
}

// NewExtractor builds an extractor with the default cues and limit.
func NewExtractor(opts ...Option) *Extractor {
	cues, err := compileCues(DefaultCues())
	if err != nil {
		panic(err)
	}

	e := &Extractor{
		cues:  cues,
		limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func compileCues(cues []Cue) ([]*compiledCue, error) {
	compiled := make([]*compiledCue, 0, len(cues))
	for _, c := range cues {
		re, err := regexp.Compile(`(?i)` + c.Expr + captureSuffix)
		if err != nil {
			return nil, fmt.Errorf("compile cue %q: %w", c.Name, err)
		}
		compiled = append(compiled, &compiledCue{Cue: c, regex: re})
	}
	return compiled, nil
}

// Limit reports the configured cap.
func (e *Extractor) Limit() int {
	return e.limit
}

// Extract returns between one and Limit() action items, in sentence order.
// When nothing qualifies the single fallback item is returned.
func (e *Extractor) Extract(transcript string) []entities.ActionItem {
	items := make([]entities.ActionItem, 0, e.limit)
	seen := make(map[string]struct{})

	for _, sentence := range splitSentences(transcript) {
		item, ok := e.candidate(sentence)
		if !ok {
			continue
		}

		key := strings.ToLower(item.Item)
		if _, dup := seen[key]; dup {
			continue
		}
		if utf8.RuneCountInString(item.Item) < minItemLen {
			continue
		}

		seen[key] = struct{}{}
		items = append(items, item)
		if len(items) == e.limit {
			break
		}
	}

	if len(items) == 0 {
		return []entities.ActionItem{entities.FallbackActionItem()}
	}
	return items
}

// candidate yields at most one action for a sentence. Only the first cue in
// scan order that occurs is considered; a short capture ends the sentence.
func (e *Extractor) candidate(sentence string) (entities.ActionItem, bool) {
	for _, c := range e.cues {
		m := c.regex.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}

		text := trimSpace(m[1])
		if utf8.RuneCountInString(text) < minCaptureLen {
			return entities.ActionItem{}, false
		}

		return entities.ActionItem{
			Item:     stripArticle(text),
			Priority: classify(sentence),
		}, true
	}
	return entities.ActionItem{}, false
}

// splitSentences cuts on terminal punctuation followed by whitespace.
// Abbreviations and decimals are not special-cased.
func splitSentences(transcript string) []string {
	pieces := sentenceBoundary.Split(transcript, -1)
	sentences := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = trimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}

// classify picks a priority from keywords anywhere in the sentence.
func classify(sentence string) entities.Priority {
	lower := strings.ToLower(sentence)
	for _, rule := range priorityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.priority
			}
		}
	}
	return entities.PriorityMedium
}

func stripArticle(text string) string {
	if loc := leadingArticle.FindStringIndex(text); loc != nil {
		return text[loc[1]:]
	}
	return text
}
