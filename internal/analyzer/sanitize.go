package analyzer

import (
	"regexp"
	"strings"
)

var (
	// C0/C1 control characters, excluding tab/newline/carriage return which
	// act as word separators and get collapsed below.
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// CleanInput strips control characters from free-text request fields and
// collapses all internal whitespace runs to single spaces.
func CleanInput(text string) string {
	text = controlChars.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
