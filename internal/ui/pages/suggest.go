package pages

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a command and
// still get a suggestion.
const maxSuggestDistance = 2

// unknownInput builds the notice shown after input a page did not accept.
func unknownInput(input string, commands []string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "please enter a command"
	}
	if s := suggest(input, commands); s != "" {
		return fmt.Sprintf("unknown command %q, did you mean %q?", input, s)
	}
	return fmt.Sprintf("unknown command %q", input)
}

// suggest returns the closest command that starts with the same
// character as input, or "" when none is close enough.
func suggest(input string, commands []string) string {
	in := strings.ToLower(input)
	if in == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range commands {
		if c == "" || in[0] != c[0] {
			continue
		}
		if d := levenshtein.ComputeDistance(in, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
