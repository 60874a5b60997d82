package topics

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DisplayDash is the single dash used in stored titles.
const DisplayDash = "\u2013"

var dashReplacer = strings.NewReplacer(
	"\u2010", DisplayDash, // hyphen
	"\u2011", DisplayDash, // non-breaking hyphen
	"\u2012", DisplayDash, // figure dash
	"\u2014", DisplayDash, // em dash
	"\u2015", DisplayDash, // horizontal bar
	"\u2212", DisplayDash, // minus sign
)

// NormalizeSpaces collapses every unicode space variant and whitespace run
// into a single ASCII space and trims both ends.
func NormalizeSpaces(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if isSpaceLike(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if r == '\u200b' || r == '\ufeff' || r == '\u2060' {
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDashes maps figure/en/em dashes and the horizontal bar to DisplayDash.
// For presentation only; lookups go through NormalizeForCompare.
func NormalizeDashes(text string) string {
	return dashReplacer.Replace(text)
}

// NormalizeForCompare is the space-normalized text with every dash variant
// collapsed to a plain hyphen. It is a lookup key, never a display value.
func NormalizeForCompare(text string) string {
	return strings.ReplaceAll(NormalizeDashes(NormalizeSpaces(text)), DisplayDash, "-")
}

// CompareKey is the case-folded NormalizeForCompare form. Two titles with
// equal compare keys are the same topic.
func CompareKey(text string) string {
	return strings.ToLower(NormalizeForCompare(text))
}

func isSpaceLike(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}
