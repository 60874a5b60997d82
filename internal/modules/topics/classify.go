package topics

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Canonicalizer classifies and sanitizes topic titles against a compiled
// Vocabulary. It is safe for concurrent use.
type Canonicalizer struct {
	baseline  string
	aliases   map[string]struct{}
	statuses  map[string]struct{}
	signals   map[string]struct{}
	wrappers  []*regexp.Regexp
	sentinels []*regexp.Regexp
	maxRunes  int
	maxWords  int
}

var (
	gradeOnlyRe = regexp.MustCompile(`^\d{1,2}(?:\s*-\s*\d{1,2})?\s*(?:-?й\s*)?(?:класс(?:а|ы|ов)?|кл\.?)$`)

	quoteReplacer = strings.NewReplacer(
		"«", "", "»", "",
		"“", "", "”", "", "„", "", "‟", "",
		"‹", "", "›", "",
		`"`, "",
	)
	topicLabelRe   = regexp.MustCompile(`(?i)^(?:тема|теме|topic|название)\s*:\s*`)
	leadingPuncRe  = regexp.MustCompile(`^[\s,;:]+`)
	trailingPuncRe = regexp.MustCompile(`[\s.!?…;:,]+$`)
)

// Baseline is the fallback title for records where "no topic" is not a valid state.
func (c *Canonicalizer) Baseline() string { return c.baseline }

// IsGradeOnly reports whether text is nothing but a grade or grade range
// ("7–9 класс", "9кл.").
func IsGradeOnly(text string) bool {
	k := CompareKey(text)
	if k == "" {
		return false
	}
	return gradeOnlyRe.MatchString(k)
}

// StripDecorations removes quotation marks, a leading "тема:" label and
// trailing sentence punctuation.
func StripDecorations(text string) string {
	s := quoteReplacer.Replace(text)
	s = strings.TrimSpace(s)
	s = leadingPuncRe.ReplaceAllString(s, "")
	s = topicLabelRe.ReplaceAllString(s, "")
	s = trailingPuncRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func (c *Canonicalizer) IsNoTopicAlias(text string) bool {
	_, ok := c.aliases[CompareKey(text)]
	return ok
}

func (c *Canonicalizer) IsStatusWord(text string) bool {
	_, ok := c.statuses[CompareKey(text)]
	return ok
}

// IsSignalField reports whether name marks a map as a progress leaf.
func (c *Canonicalizer) IsSignalField(name string) bool {
	_, ok := c.signals[name]
	return ok
}

// SanitizeTopicTitle returns text as a display-ready topic title, or "" when
// nothing usable remains.
func (c *Canonicalizer) SanitizeTopicTitle(text string) string {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsAny(s, "\r\n") {
		return ""
	}
	for {
		prev := s
		s = NormalizeDashes(NormalizeSpaces(s))
		s = StripDecorations(s)
		for _, re := range c.sentinels {
			s = re.ReplaceAllString(s, " ")
		}
		for _, re := range c.wrappers {
			s = re.ReplaceAllString(s, "")
		}
		s = strings.TrimSpace(s)
		if s == prev {
			break
		}
	}
	switch {
	case s == "",
		IsGradeOnly(s),
		utf8.RuneCountInString(s) > c.maxRunes,
		len(strings.Fields(s)) > c.maxWords,
		strings.ContainsAny(s, "?!."),
		c.IsStatusWord(s),
		c.IsNoTopicAlias(s):
		return ""
	}
	return s
}

// IsBadTopicTitle is a stricter predicate than SanitizeTopicTitle: it also
// flags diagnostic and quiz phrasing the sanitizer left in place.
func (c *Canonicalizer) IsBadTopicTitle(text string) bool {
	s := c.SanitizeTopicTitle(text)
	if s == "" {
		return true
	}
	k := CompareKey(s)
	if _, ok := c.aliases[k]; ok {
		return true
	}
	if strings.HasPrefix(k, "диагностика") || strings.HasPrefix(k, "тест") {
		return true
	}
	var hasDiag, hasPo bool
	for _, w := range strings.Fields(k) {
		switch w {
		case "диагностика":
			hasDiag = true
		case "по":
			hasPo = true
		}
	}
	return hasDiag && hasPo
}
