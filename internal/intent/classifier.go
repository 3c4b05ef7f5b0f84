// Package intent classifies raw user text into operational intent
// categories using weighted keyword tables. Classification is a pure
// function: ambiguous text degrades to low confidence, never to an error.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the primary intent resolved for a piece of user text.
type Intent string

const (
	IntentChat      Intent = "chat"
	IntentExecution Intent = "execution"
	IntentFileOp    Intent = "file_op"
	IntentData      Intent = "data"
	IntentSystem    Intent = "system"
)

// Operation categories matched by the keyword tables.
const (
	CategoryFileCreate  = "file-create"
	CategoryFileEdit    = "file-edit"
	CategoryFileRead    = "file-read"
	CategoryFileLoad    = "file-load"
	CategoryFileDelete  = "file-delete"
	CategoryFileList    = "file-list"
	CategoryFileCache   = "file-cache-op"
	CategoryExecution   = "execution"
	CategoryData        = "data-processing"
	CategorySystemCheck = "system-check"
)

// Scoring weights. These are tunable parameters, not structural contracts:
// a category match is worth more than a booster, and chat phrases only
// dampen when nothing operational matched.
var (
	CategoryWeight = 0.3
	BoosterWeight  = 0.15
	ChatDampen     = 0.2
)

// Result holds the outcome of classifying one piece of user text.
type Result struct {
	// Intent is the resolved primary intent.
	Intent Intent

	// Operational reports whether the text warrants action.
	Operational bool

	// Categories lists the matched operation categories, in table order.
	Categories []string

	// Confidence is the clamped score in [0, 1].
	Confidence float64

	// Booster detail flags.
	HasFileExtension bool
	HasBackReference bool
	HasCodeFence     bool
}

// HasCategory reports whether the named category matched.
func (r *Result) HasCategory(name string) bool {
	for _, c := range r.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// categoryTable pairs a category name with its keywords. Single-word
// keywords match whole words; multi-word keywords match as phrases.
type categoryTable struct {
	name     string
	keywords []string
}

var categoryTables = []categoryTable{
	{CategoryFileCreate, []string{"create a file", "create file", "make a file", "new file", "write a file", "save this to", "save it to"}},
	{CategoryFileEdit, []string{"edit", "modify", "update the file", "change the file", "append to", "rewrite", "rename"}},
	{CategoryFileRead, []string{"read", "show me the file", "open the file", "contents of", "what's in the file", "display the file"}},
	{CategoryFileLoad, []string{"load", "import the file", "bring in the file", "pull in the file"}},
	{CategoryFileDelete, []string{"delete", "remove the file", "erase", "get rid of the file"}},
	{CategoryFileList, []string{"list files", "list the files", "what files", "show files", "directory listing", "ls"}},
	{CategoryFileCache, []string{"cache", "cached", "clear the cache", "reload the file"}},
	{CategoryExecution, []string{"run", "execute", "evaluate", "eval", "calculate", "compute", "script"}},
	{CategoryData, []string{"parse", "filter", "sort", "transform", "aggregate", "summarize", "csv", "json", "analyze"}},
	{CategorySystemCheck, []string{"status", "stats", "statistics", "session info", "uptime", "how many operations", "diagnostics"}},
}

// backReferencePhrases point back at artifacts from earlier turns.
var backReferencePhrases = []string{
	"that file", "this file", "the script", "the same file", "it again",
	"the file you", "the one you", "the previous",
}

// chatPhrases only dampen when nothing operational matched.
var chatPhrases = []string{
	"how are you", "hello", "hey there", "good morning", "good evening",
	"thank you", "thanks", "what's up", "who are you", "nice to meet",
	"tell me a joke", "how's it going",
}

var fileExtensionPattern = regexp.MustCompile(`\b\w+\.(?:txt|md|json|csv|yaml|yml|js|go|py|sh|log|xml|html)\b`)

// Classify scores text against the keyword tables and resolves a primary
// intent. It is a pure function with no side effects and never fails.
func Classify(text string) *Result {
	lowered := strings.ToLower(text)
	words := fieldWords(lowered)

	result := &Result{}
	score := 0.0

	for _, table := range categoryTables {
		if matchAny(lowered, words, table.keywords) {
			result.Categories = append(result.Categories, table.name)
			score += CategoryWeight
		}
	}

	// Booster signals: weak positive evidence that raises confidence
	// without alone establishing a category.
	if fileExtensionPattern.MatchString(lowered) {
		result.HasFileExtension = true
		score += BoosterWeight
	}
	if matchAny(lowered, words, backReferencePhrases) {
		result.HasBackReference = true
		score += BoosterWeight
	}
	if strings.Contains(text, "```") {
		result.HasCodeFence = true
		score += BoosterWeight
	}

	// Chat phrases dampen only when nothing operational matched. An
	// embedded code fence counts as operational here: a fenced block
	// inside a question is never idle chat.
	if len(result.Categories) == 0 && !result.HasCodeFence {
		for _, phrase := range chatPhrases {
			if matchPhrase(lowered, words, phrase) {
				score -= ChatDampen
			}
		}
	}
	if score < 0 {
		score = 0
	}

	result.Confidence = min(score, 1.0)

	// A weak category hit is stronger evidence of intent than the numeric
	// threshold implies, hence the OR.
	result.Operational = result.Confidence >= 0.4 ||
		len(result.Categories) > 0 ||
		result.HasCodeFence

	result.Intent = resolvePrimary(result)
	return result
}

// resolvePrimary applies the first matching resolution rule.
func resolvePrimary(r *Result) Intent {
	switch {
	case !r.Operational:
		return IntentChat
	case r.HasCategory(CategoryExecution) || r.HasCodeFence:
		return IntentExecution
	case r.hasFileCategory():
		return IntentFileOp
	case r.HasCategory(CategoryData):
		return IntentData
	case r.HasCategory(CategorySystemCheck):
		return IntentSystem
	default:
		// Operational but uncategorized: assume the user wants something run.
		return IntentExecution
	}
}

func (r *Result) hasFileCategory() bool {
	for _, c := range r.Categories {
		if strings.HasPrefix(c, "file-") {
			return true
		}
	}
	return false
}

func matchAny(lowered string, words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if matchPhrase(lowered, words, kw) {
			return true
		}
	}
	return false
}

// matchPhrase matches multi-word keywords as substrings and single-word
// keywords as whole words, so short tokens like "ls" and "run" do not
// fire inside unrelated words.
func matchPhrase(lowered string, words map[string]bool, keyword string) bool {
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(lowered, keyword)
	}
	return words[keyword]
}

func fieldWords(lowered string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '_' && r != '\''
	}) {
		words[strings.Trim(w, "'")] = true
	}
	return words
}
