package suggest

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// minSuggestionLen drops fragments such as headings or stray numbering.
// Length is counted in characters, not bytes.
const minSuggestionLen = 10

var errEmptySuggestions = errors.New("provider returned no usable suggestions")

// leadingMarker matches list numbering, dashes, and bullets at line start.
var leadingMarker = regexp.MustCompile(`^[\d\-•]+`)

// ParseSuggestions splits generated text into at most MaxSuggestions lines,
// stripping list markers and dropping short fragments.
func ParseSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(leadingMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		line = strings.TrimSpace(strings.TrimLeft(line, ".)"))
		if utf8.RuneCountInString(line) <= minSuggestionLen {
			continue
		}
		out = append(out, line)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
