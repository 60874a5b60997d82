package topics

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the locale tables the classifier works from. Every table
// can be extended from a YAML file without touching traversal code.
type Vocabulary struct {
	BaselineTopic    string   `yaml:"baseline_topic"`
	NoTopicAliases   []string `yaml:"no_topic_aliases"`
	StatusWords      []string `yaml:"status_words"`
	WrapperPatterns  []string `yaml:"wrapper_patterns"`
	SentinelPatterns []string `yaml:"sentinel_patterns"`
	SignalFields     []string `yaml:"signal_fields"`
	MaxTitleRunes    int      `yaml:"max_title_runes"`
	MaxTitleWords    int      `yaml:"max_title_words"`

	// ReplaceDefaults makes the file's lists replace the built-in tables
	// instead of extending them.
	ReplaceDefaults bool `yaml:"replace_defaults"`
}

const (
	DefaultBaselineTopic = "Базовые темы"
	DefaultMaxTitleRunes = 70
	DefaultMaxTitleWords = 8
)

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		BaselineTopic: DefaultBaselineTopic,
		NoTopicAliases: []string{
			"__no_topic__",
			"__none__",
			"no_topic",
			"no topic",
			"notopic",
			"none",
			"null",
			"undefined",
			"n/a",
			"-",
			"без темы",
			"без названия",
			"нет темы",
			"тема не указана",
			"не указано",
			"не указана",
			"общее",
			"общая тема",
			"общие вопросы",
			"разное",
			"прочее",
		},
		StatusWords: []string{
			"изучено",
			"изучена",
			"изучен",
			"не изучено",
			"в процессе",
			"в работе",
			"не начато",
			"начато",
			"освоено",
			"пройдено",
			"завершено",
			"выполнено",
			"готово",
			"повторить",
			"на повторении",
			"completed",
			"in progress",
			"done",
			"mastered",
		},
		WrapperPatterns: []string{
			`(?i)^диагностик\p{L}*(?:\s+\S+){0,4}?\s+по\s+(?:теме\s*:?\s*)?`,
			`(?i)^диагностик\p{L}*\s*[:\-–]\s*`,
			`(?i)^проверка\s+понимания\s*[:\-–]?\s*`,
			`(?i)^(?:мини-)?тест(?:ы)?\s*[:\-–]\s*`,
			`(?i)^тест\s+по\s+(?:теме\s*:?\s*)?`,
			`(?i)^(?:квиз|викторина|опрос)\s*[:\-–]\s*`,
		},
		SentinelPatterns: []string{
			`(?i)__no_topic__`,
			`(?i)__none__`,
			`(?i)без\s+(?:темы|названия)`,
		},
		SignalFields: []string{
			"attempts",
			"correct",
			"wrong",
			"total",
			"mastery",
			"streak",
			"lastScore",
			"bestScore",
			"lastSeen",
			"lastSeenAt",
			"createdAt",
			"status",
		},
		MaxTitleRunes: DefaultMaxTitleRunes,
		MaxTitleWords: DefaultMaxTitleWords,
	}
}

// LoadVocabulary reads a YAML vocabulary file and overlays it on the
// defaults. A missing file yields the defaults.
func LoadVocabulary(path string) (Vocabulary, error) {
	base := DefaultVocabulary()
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("reading %s: %w", path, err)
	}
	var file Vocabulary
	if err := yaml.Unmarshal(b, &file); err != nil {
		return base, fmt.Errorf("parsing %s: %w", path, err)
	}
	return base.Overlay(file), nil
}

// Overlay merges o into v. Scalars in o win when set; lists extend v unless
// o.ReplaceDefaults is set and the list is non-empty.
func (v Vocabulary) Overlay(o Vocabulary) Vocabulary {
	out := v
	if s := strings.TrimSpace(o.BaselineTopic); s != "" {
		out.BaselineTopic = s
	}
	if o.MaxTitleRunes > 0 {
		out.MaxTitleRunes = o.MaxTitleRunes
	}
	if o.MaxTitleWords > 0 {
		out.MaxTitleWords = o.MaxTitleWords
	}
	out.NoTopicAliases = overlayList(v.NoTopicAliases, o.NoTopicAliases, o.ReplaceDefaults)
	out.StatusWords = overlayList(v.StatusWords, o.StatusWords, o.ReplaceDefaults)
	out.WrapperPatterns = overlayList(v.WrapperPatterns, o.WrapperPatterns, o.ReplaceDefaults)
	out.SentinelPatterns = overlayList(v.SentinelPatterns, o.SentinelPatterns, o.ReplaceDefaults)
	out.SignalFields = overlayList(v.SignalFields, o.SignalFields, o.ReplaceDefaults)
	return out
}

func overlayList(base, extra []string, replace bool) []string {
	if len(extra) == 0 {
		return append([]string(nil), base...)
	}
	if replace {
		return append([]string(nil), extra...)
	}
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Compile builds a Canonicalizer from the vocabulary.
func (v Vocabulary) Compile() (*Canonicalizer, error) {
	c := &Canonicalizer{
		baseline: NormalizeDashes(NormalizeSpaces(v.BaselineTopic)),
		aliases:  compareSet(v.NoTopicAliases),
		statuses: compareSet(v.StatusWords),
		signals:  map[string]struct{}{},
		maxRunes: v.MaxTitleRunes,
		maxWords: v.MaxTitleWords,
	}
	if c.baseline == "" {
		c.baseline = DefaultBaselineTopic
	}
	if c.maxRunes <= 0 {
		c.maxRunes = DefaultMaxTitleRunes
	}
	if c.maxWords <= 0 {
		c.maxWords = DefaultMaxTitleWords
	}
	for _, f := range v.SignalFields {
		if f = strings.TrimSpace(f); f != "" {
			c.signals[f] = struct{}{}
		}
	}
	var err error
	if c.wrappers, err = compileAll(v.WrapperPatterns); err != nil {
		return nil, fmt.Errorf("wrapper patterns: %w", err)
	}
	if c.sentinels, err = compileAll(v.SentinelPatterns); err != nil {
		return nil, fmt.Errorf("sentinel patterns: %w", err)
	}
	return c, nil
}

func compareSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if k := CompareKey(w); k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}
