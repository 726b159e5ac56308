package expr

import (
	"regexp"
	"strings"
)

// glyphReplacer maps Unicode operator glyphs to their ASCII forms.
var glyphReplacer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"✕", "*",
	"➗", "/",
)

var (
	// An x between two digits is a multiplication sign ("5x14", "2405 x 13").
	digitTimesRe = regexp.MustCompile(`(\d)\s*x\s*(\d)`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases and trims the input, maps operator glyphs to ASCII,
// turns an x between digits into *, and collapses whitespace runs.
// It never fails; the result may still be rejected by Parse.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = glyphReplacer.Replace(s)

	// Matches cannot overlap ("2x3x4"), so repeat until stable.
	for {
		next := digitTimesRe.ReplaceAllString(s, "$1*$2")
		if next == s {
			break
		}
		s = next
	}

	return spaceRunRe.ReplaceAllString(s, " ")
}
