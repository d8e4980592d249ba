package actions

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []entities.ActionItem
	}{
		{
			name:       "two sentences with different cues",
			transcript: "We need to prepare the budget report urgently. Please send the invoice soon.",
			want: []entities.ActionItem{
				{Item: "prepare the budget report urgently", Priority: entities.PriorityHigh},
				{Item: "send the invoice soon", Priority: entities.PriorityMedium},
			},
		},
		{
			name:       "leading determiner is stripped",
			transcript: "We need to The budget report is due.",
			want: []entities.ActionItem{
				{Item: "budget report is due", Priority: entities.PriorityMedium},
			},
		},
		{
			name:       "action item label with colon",
			transcript: "Action item: an updated roadmap for the board",
			want: []entities.ActionItem{
				{Item: "updated roadmap for the board", Priority: entities.PriorityMedium},
			},
		},
		{
			name:       "low priority keyword",
			transcript: "Someone should clean up the wiki eventually!",
			want: []entities.ActionItem{
				{Item: "clean up the wiki eventually", Priority: entities.PriorityLow},
			},
		},
		{
			name:       "high keyword beats low keyword",
			transcript: "We must fix the login bug today, or when possible.",
			want: []entities.ActionItem{
				{Item: "fix the login bug today, or when possible", Priority: entities.PriorityHigh},
			},
		},
		{
			name:       "keywords match case-insensitively",
			transcript: "Can you book the venue for the offsite TOMORROW?",
			want: []entities.ActionItem{
				{Item: "book the venue for the offsite TOMORROW", Priority: entities.PriorityHigh},
			},
		},
		{
			name:       "medium keyword wins over low",
			transcript: "Let's ship the beta next week if it's nice to have.",
			want: []entities.ActionItem{
				{Item: "ship the beta next week if it's nice to have", Priority: entities.PriorityMedium},
			},
		},
		{
			name:       "duplicates differ only in case",
			transcript: "Please Send The Agenda To Everyone. please send the agenda to everyone.",
			want: []entities.ActionItem{
				{Item: "Send The Agenda To Everyone", Priority: entities.PriorityMedium},
			},
		},
		{
			name:       "cue inside a word still matches",
			transcript: "The team wants to preview the slides before Friday.",
			want: []entities.ActionItem{
				{Item: "slides before Friday", Priority: entities.PriorityMedium},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.transcript))
		})
	}
}

func TestExtract_Fallback(t *testing.T) {
	fallback := []entities.ActionItem{entities.FallbackActionItem()}

	tests := []struct {
		name       string
		transcript string
	}{
		{name: "empty string", transcript: ""},
		{name: "whitespace only", transcript: " \n\t  "},
		{name: "no cue phrases", transcript: "Thanks everyone. Great meeting! See you around?"},
		{name: "capture too short", transcript: "I will go."},
		{name: "normalized text too short", transcript: "Please the   abcde."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.transcript)
			assert.Equal(t, fallback, got)
			assert.Equal(t, "Review the meeting transcript for action items", got[0].Item)
			assert.Equal(t, entities.PriorityMedium, got[0].Priority)
		})
	}
}

func TestExtract_ShortCaptureDoesNotFallThrough(t *testing.T) {
	// "will" comes before "please" in scan order and only captures "try".
	got := Extract("Please send the quarterly report, we will try")
	assert.Equal(t, []entities.ActionItem{entities.FallbackActionItem()}, got)
}

func TestExtract_FirstCueInScanOrderWins(t *testing.T) {
	// "please" appears first in the text but "will" is earlier in scan order.
	got := Extract("Please note that Maria will draft the hiring plan")
	require.Len(t, got, 1)
	assert.Equal(t, "draft the hiring plan", got[0].Item)
}

func TestExtract_OneCandidatePerSentence(t *testing.T) {
	got := Extract("We need to finalize the contract and we should email the vendor")
	require.Len(t, got, 1)
	assert.Equal(t, "finalize the contract and we should email the vendor", got[0].Item)
}

func TestExtract_CapsAtFive(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "We need to handle work package %d. ", i)
	}

	got := Extract(b.String())
	require.Len(t, got, DefaultLimit)
	for i, item := range got {
		assert.Equal(t, fmt.Sprintf("handle work package %d", i+1), item.Item)
	}
}

func TestExtract_WithLimit(t *testing.T) {
	e := NewExtractor(WithLimit(2))
	got := e.Extract("Please send the notes out. We will book the room. Let's write the retro doc.")
	require.Len(t, got, 2)
	assert.Equal(t, "send the notes out", got[0].Item)
	assert.Equal(t, "book the room", got[1].Item)

	assert.Equal(t, DefaultLimit, NewExtractor(WithLimit(0)).Limit())
}

func TestExtract_WithCues(t *testing.T) {
	e := NewExtractor(WithCues([]Cue{{Name: "todo", Expr: literal("todo ")}}))
	got := e.Extract("TODO rotate the api credentials. We need to ignore this one.")
	require.Len(t, got, 1)
	assert.Equal(t, "rotate the api credentials", got[0].Item)
}

func TestWithCues_InvalidPatternPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewExtractor(WithCues([]Cue{{Name: "broken", Expr: "(unclosed "}}))
	})
	assert.NotPanics(t, func() {
		assert.Equal(t, DefaultLimit, NewExtractor(WithCues(nil)).Limit())
	})
}

func TestExtract_Properties(t *testing.T) {
	inputs := []string{
		"",
		"Hello.",
		"We need to prepare the budget report urgently. Please send the invoice soon.",
		strings.Repeat("Please review the architecture doc. ", 20),
		"We will a b. Schedule the planning session for next week! Can you update the release notes? Complete the audit immediately.",
		"Action item:  migrate the billing service. action item - nope. Follow up on the security review asap.",
	}

	for _, in := range inputs {
		got := Extract(in)
		assert.GreaterOrEqual(t, len(got), 1, in)
		assert.LessOrEqual(t, len(got), DefaultLimit, in)

		seen := make(map[string]bool)
		for _, item := range got {
			key := strings.ToLower(item.Item)
			assert.False(t, seen[key], "duplicate item %q", item.Item)
			seen[key] = true
			assert.Greater(t, len([]rune(item.Item)), 5)
			assert.Contains(t, []entities.Priority{entities.PriorityHigh, entities.PriorityMedium, entities.PriorityLow}, item.Priority)
		}

		assert.Equal(t, got, Extract(in), "extract must be deterministic")
	}
}

func TestExtract_Concurrent(t *testing.T) {
	const transcript = "We need to prepare the budget report urgently. Please send the invoice soon."
	want := Extract(transcript)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Extract(transcript))
		}()
	}
	wg.Wait()
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one.  Second one!\nThird? Fourth.Still fourth 3.5 items.")
	assert.Equal(t, []string{"First one", "Second one", "Third", "Fourth.Still fourth 3.5 items."}, got)
	assert.Empty(t, splitSentences("   "))
}

func TestSplitSentences_AnyWhitespaceEndsSentence(t *testing.T) {
	for _, sep := range []string{"\v", "\f", "\u0085", "\u00a0", "\u2003", "\u001c", "\u001f", "\u3000"} {
		got := splitSentences("Please send the final report." + sep + "We will review the budget numbers.")
		assert.Equal(t, []string{"Please send the final report", "We will review the budget numbers."}, got, "separator %q", sep)
	}
}

func TestExtract_VerticalTabBetweenSentences(t *testing.T) {
	got := Extract("Please send the final report.\vWe will review the budget numbers.")
	assert.Equal(t, []entities.ActionItem{
		{Item: "send the final report", Priority: entities.PriorityMedium},
		{Item: "review the budget numbers", Priority: entities.PriorityMedium},
	}, got)
}

func TestExtract_ActionItemCueAcceptsAnyWhitespace(t *testing.T) {
	got := Extract("Action item:\vbook the offsite venue.")
	require.Len(t, got, 1)
	assert.Equal(t, "book the offsite venue", got[0].Item)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, entities.PriorityHigh, classify("this is CRITICAL"))
	assert.Equal(t, entities.PriorityHigh, classify("Due Today, eventually"))
	assert.Equal(t, entities.PriorityMedium, classify("sometime this week"))
	assert.Equal(t, entities.PriorityLow, classify("nice to have"))
	assert.Equal(t, entities.PriorityMedium, classify("no keywords here"))
}

func TestStripArticle(t *testing.T) {
	assert.Equal(t, "report", stripArticle("The report"))
	assert.Equal(t, "apple", stripArticle("an apple"))
	assert.Equal(t, "a plan", stripArticle("A a plan"))
	assert.Equal(t, "another day", stripArticle("another day"))
	assert.Equal(t, "theme", stripArticle("theme"))
	assert.Equal(t, "budget report is due", stripArticle("the\vbudget report is due"))
	assert.Equal(t, "budget", stripArticle("A\u001fbudget"))
	assert.Equal(t, "budget", stripArticle("an\u00a0budget"))
}
