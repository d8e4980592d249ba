package actions

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/johnquangdev/polyglot-minutes/internal/domain/entities"
)

// Cue is a literal phrase that introduces an action in a sentence.
type Cue struct {
	Name string
	// Expr matches the cue itself; the action text is whatever follows it
	// up to the next stop mark.
	Expr string
}

// DefaultCues returns the cue phrases in scan order. The first cue found in a
// sentence decides the candidate for that sentence.
func DefaultCues() []Cue {
	return []Cue{
		{Name: "need_to", Expr: literal("need to ")},
		{Name: "will", Expr: literal("will ")},
		{Name: "should", Expr: literal("should ")},
		{Name: "must", Expr: literal("must ")},
		{Name: "lets", Expr: literal("let's ")},
		{Name: "can_you", Expr: literal("can you ")},
		{Name: "please", Expr: literal("please ")},
		{Name: "action_item", Expr: `action item(?::|` + whitespace + `)+`},
		{Name: "follow_up_on", Expr: literal("follow up on ")},
		{Name: "prepare", Expr: literal("prepare ")},
		{Name: "schedule", Expr: literal("schedule ")},
		{Name: "review", Expr: literal("review ")},
		{Name: "create", Expr: literal("create ")},
		{Name: "send", Expr: literal("send ")},
		{Name: "update", Expr: literal("update ")},
		{Name: "complete", Expr: literal("complete ")},
	}
}

// Keyword sets for priority classification, matched as substrings of the
// lower-cased sentence. High beats Medium beats Low.
var (
	highPriorityKeywords   = []string{"urgent", "asap", "immediately", "critical", "important", "priority", "today", "tomorrow"}
	mediumPriorityKeywords = []string{"this week", "soon", "next week"}
	lowPriorityKeywords    = []string{"when possible", "eventually", "nice to have"}
)

type priorityRule struct {
	priority entities.Priority
	keywords []string
}

var priorityRules = []priorityRule{
	{priority: entities.PriorityHigh, keywords: highPriorityKeywords},
	{priority: entities.PriorityMedium, keywords: mediumPriorityKeywords},
	{priority: entities.PriorityLow, keywords: lowPriorityKeywords},
}

// whitespace matches one whitespace rune. Go's \s alone misses the vertical
// tab, the information separators U+001C..U+001F, NEL and the Unicode spaces.
const whitespace = `[\s\x{0B}\x{1C}-\x{1F}\p{Z}\x{85}]`

var (
	// sentenceBoundary is a terminal mark followed by whitespace.
	sentenceBoundary = regexp.MustCompile(`[.!?]` + whitespace + `+`)
	leadingArticle   = regexp.MustCompile(`(?i)^(?:the|a|an)` + whitespace + `+`)
)

// isSpace agrees with the whitespace class above.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// captureSuffix grabs the action text up to the next stop mark.
const captureSuffix = `([^.!?]*)`

func literal(phrase string) string {
	return regexp.QuoteMeta(phrase)
}
