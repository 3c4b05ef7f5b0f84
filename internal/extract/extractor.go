// Package extract pulls executable code fragments out of model response
// text. The search is tiered: explicitly tagged fences win over untagged
// ones, and bare utility-call lines are a last resort. The first tier
// with any match suppresses the tiers below it.
package extract

import (
	"regexp"
	"strings"
)

// Tier identifies which search tier produced a block.
type Tier int

const (
	// TierTagged matches fenced blocks tagged as the target language.
	TierTagged Tier = iota + 1
	// TierUntagged matches untagged fences whose body looks like code.
	TierUntagged
	// TierBareCall matches bare single-line utility calls with no fence.
	TierBareCall
)

// Block is one extracted code fragment.
type Block struct {
	Code string
	Tier Tier
}

var (
	// The closing ``` must follow a newline so backticks inside the code
	// body are not mistaken for the fence terminator.
	taggedFencePattern   = regexp.MustCompile("(?s)```(?:javascript|js)[^\\n]*\\n(.*?)\\n```")
	untaggedFencePattern = regexp.MustCompile("(?s)```[ \\t]*\\n(.*?)\\n```")

	assignmentPattern = regexp.MustCompile(`(?m)^\s*[A-Za-z_]\w*(?:\.\w+|\[[^\]]*\])*\s*=[^=]`)
)

// codeIndicators accept an untagged fence body as executable. Prose
// formatted in a fence rarely contains any of these.
var codeIndicators = []string{
	"let ", "const ", "var ", "function ",
	"import ", "require(",
	"print(", "console.log",
	"fs.read", "fs.open", "fs.write",
	"=>",
}

// bareCallPrefixes recognize single-line helper invocations outside any
// fence: path, file, process, data and text utilities.
var bareCallPrefixes = []string{
	"fs.", "re.", "path.", "os.", "proc.",
	"JSON.parse(", "JSON.stringify(",
}

// Extract returns the code fragments found in responseText, in order of
// appearance, deduplicated by exact text. Malformed or absent fences
// never raise: the result is simply empty.
func Extract(responseText string) []Block {
	if blocks := fencedBlocks(responseText, taggedFencePattern, TierTagged, false); len(blocks) > 0 {
		return blocks
	}
	if blocks := fencedBlocks(responseText, untaggedFencePattern, TierUntagged, true); len(blocks) > 0 {
		return blocks
	}
	return bareCallLines(responseText)
}

// Texts flattens blocks to their raw code strings.
func Texts(blocks []Block) []string {
	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		texts = append(texts, b.Code)
	}
	return texts
}

func fencedBlocks(text string, pattern *regexp.Regexp, tier Tier, requireIndicator bool) []Block {
	matches := pattern.FindAllStringSubmatch(text, -1)
	var blocks []Block
	seen := make(map[string]bool)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		code := strings.TrimSpace(match[1])
		if code == "" || seen[code] {
			continue
		}
		if requireIndicator && !LooksLikeCode(code) {
			continue
		}
		seen[code] = true
		blocks = append(blocks, Block{Code: code, Tier: tier})
	}
	return blocks
}

// LooksLikeCode reports whether text contains at least one recognizable
// code construct. It gates untagged fences so prose-formatted examples
// are not treated as executable, and lets callers recognize bare script
// lines.
func LooksLikeCode(body string) bool {
	for _, indicator := range codeIndicators {
		if strings.Contains(body, indicator) {
			return true
		}
	}
	if assignmentPattern.MatchString(body) {
		return true
	}
	return isBareCall(strings.TrimSpace(body))
}

func bareCallLines(text string) []Block {
	var blocks []Block
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		if !isBareCall(line) {
			continue
		}
		seen[line] = true
		blocks = append(blocks, Block{Code: line, Tier: TierBareCall})
	}
	return blocks
}

func isBareCall(line string) bool {
	if !strings.HasSuffix(line, ")") && !strings.HasSuffix(line, ");") {
		return false
	}
	for _, prefix := range bareCallPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
