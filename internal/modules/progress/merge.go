// Package progress merges per-topic progress records that end up under the
// same canonical key.
package progress

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is one knowledge-map leaf: named fields decoded from JSON.
type Record = map[string]any

const (
	FieldScore     = "score"
	FieldUpdatedAt = "updatedAt"
	FieldUpdated   = "updated"

	// DefaultScore stands in for a missing score when merging, so the
	// incoming score can only lower the result.
	DefaultScore = 1.0
)

// Merge folds incoming into a copy of base:
//   - score: lower wins, a missing base score counts as DefaultScore
//   - updatedAt/updated: later parsed timestamp wins, base kept when unparseable
//   - numeric on both sides: summed
//   - anything else: base wins when set
func Merge(base, incoming Record) Record {
	out := make(Record, len(base)+len(incoming))
	for k, v := range base {
		out[k] = v
	}

	keys := make([]string, 0, len(incoming))
	for k := range incoming {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		in := incoming[k]
		cur, has := out[k]
		if has && cur == nil {
			has = false
		}
		switch {
		case k == FieldScore:
			out[k] = mergeScore(cur, has, in)
		case IsTimestampField(k):
			if !has {
				out[k] = in
				continue
			}
			ct, okCur := ParseTimestamp(cur)
			it, okIn := ParseTimestamp(in)
			if okCur && okIn && it.After(ct) {
				out[k] = in
			}
		case has && IsNumeric(cur) && IsNumeric(in):
			out[k] = addNumbers(cur, in)
		default:
			if !has {
				out[k] = in
			}
		}
	}
	return out
}

func IsTimestampField(name string) bool {
	return name == FieldUpdatedAt || name == FieldUpdated
}

func mergeScore(cur any, has bool, in any) any {
	inF, ok := ToFloat(in)
	if !ok {
		if !has {
			return in
		}
		return cur
	}
	curF, curOK := ToFloat(cur)
	if !has || !curOK {
		if inF < DefaultScore {
			return in
		}
		return numberLike(in, DefaultScore)
	}
	if inF < curF {
		return in
	}
	return cur
}

// IsNumeric reports whether v is a JSON number (json.Number or float64).
func IsNumeric(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func addNumbers(a, b any) any {
	an, aNum := a.(json.Number)
	bn, bNum := b.(json.Number)
	if aNum && bNum {
		ai, errA := an.Int64()
		bi, errB := bn.Int64()
		if errA == nil && errB == nil {
			return json.Number(strconv.FormatInt(ai+bi, 10))
		}
	}
	af, _ := ToFloat(a)
	bf, _ := ToFloat(b)
	return numberLike(a, af+bf)
}

func numberLike(template any, f float64) any {
	switch template.(type) {
	case json.Number:
		return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
	default:
		return f
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 style strings and numeric epochs
// (milliseconds above 1e11, seconds otherwise).
func ParseTimestamp(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f), true
	}
	f, ok := ToFloat(v)
	if !ok {
		return time.Time{}, false
	}
	return fromEpoch(f), true
}

func fromEpoch(f float64) time.Time {
	if math.Abs(f) >= 1e11 {
		return time.UnixMilli(int64(f)).UTC()
	}
	return time.Unix(int64(f), 0).UTC()
}
