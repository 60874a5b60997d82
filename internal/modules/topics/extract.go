package topics

import "strings"

// CoerceTopicTitle turns an arbitrary raw value (comma-joined, a sentence,
// a wrapper phrase) into at most one sanitized title. It returns "" when
// nothing survives; callers decide whether to substitute the baseline.
func (c *Canonicalizer) CoerceTopicTitle(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	parts := []string{raw}
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	}
	for _, part := range parts {
		t := c.SanitizeTopicTitle(part)
		if t == "" || IsGradeOnly(t) || c.IsNoTopicAlias(t) || c.IsStatusWord(t) {
			continue
		}
		return t
	}
	// "Диагностика по Математика" style phrasing without a comma.
	return c.SanitizeTopicTitle(raw)
}

// CanonicalTopicKey is the stored map key for rawKey: the coerced title, or
// the baseline when nothing can be extracted.
func (c *Canonicalizer) CanonicalTopicKey(rawKey string) string {
	if t := c.CoerceTopicTitle(rawKey); t != "" {
		return t
	}
	return c.baseline
}

// AsString returns v when it is a JSON string and "" otherwise.
func AsString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

var defaultCanonicalizer = mustCompileDefault()

func mustCompileDefault() *Canonicalizer {
	c, err := DefaultVocabulary().Compile()
	if err != nil {
		panic("topics: default vocabulary: " + err.Error())
	}
	return c
}

// Default returns the canonicalizer built from DefaultVocabulary.
func Default() *Canonicalizer { return defaultCanonicalizer }
