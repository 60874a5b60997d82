package repair

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDecode(t *testing.T, raw string) any {
	t.Helper()
	v, err := decodeJSON(raw)
	if err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return v
}

func mustEncode(t *testing.T, v any) string {
	t.Helper()
	s, err := encodeJSON(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return s
}

func TestInferShape(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want subjectShape
	}{
		{"flat", `{"Дроби":{"score":0.5},"Проценты":{"score":1}}`, flatSubject},
		{"leveled", `{"Базовый":{"Дроби":{"score":0.5}}}`, leveledSubject},
		{"scalars only", `{"note":"x","count":3}`, flatSubject},
		{"mixed", `{"Дроби":{"score":0.5},"Продвинутый":{}}`, leveledSubject},
	}
	for _, tc := range cases {
		got := inferShape(mustDecode(t, tc.in).(map[string]any))
		if got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}

func TestKnowledgeMapMigrator(t *testing.T) {
	m := NewMigrators(nil)
	cases := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{
			name:    "flat case collision merges progress",
			in:      `{"Математика":{"Дроби.":{"score":0.9,"attempts":2},"дроби":{"score":0.4,"attempts":1}}}`,
			want:    `{"Математика":{"дроби":{"attempts":3,"score":0.4}}}`,
			changed: true,
		},
		{
			name:    "no-topic alias becomes baseline next to a clean title",
			in:      `{"Математика":{"Без темы":{"score":0.5},"Квадратные уравнения":{"score":0.9}}}`,
			want:    `{"Математика":{"Базовые темы":{"score":0.5},"Квадратные уравнения":{"score":0.9}}}`,
			changed: true,
		},
		{
			name:    "legacy scalar never swallows a colliding progress record",
			in:      `{"Алгебра":{"Дроби":"legacy","дроби.":{"score":0.3,"attempts":4}}}`,
			want:    `{"Алгебра":{"Дроби":"legacy","дроби":{"attempts":4,"score":0.3}}}`,
			changed: true,
		},
		{
			name:    "grade-only key falls back to baseline",
			in:      `{"Математика":{"7–9 класс":{"score":0.5}}}`,
			want:    `{"Математика":{"Базовые темы":{"score":0.5}}}`,
			changed: true,
		},
		{
			name:    "leveled subject rewrites leaves only",
			in:      `{"Алгебра":{"Базовый":{"«Квадратные уравнения»":{"updatedAt":"2024-01-01"},"note":"x"}}}`,
			want:    `{"Алгебра":{"Базовый":{"note":"x","Квадратные уравнения":{"updatedAt":"2024-01-01"}}}}`,
			changed: true,
		},
		{
			name:    "collision keeps later timestamp",
			in:      `{"Физика":{"Кинематика":{"score":0.7,"updatedAt":"2024-01-01T00:00:00Z"},"кинематика ":{"score":0.8,"updatedAt":"2024-03-01T00:00:00Z"}}}`,
			want:    `{"Физика":{"Кинематика":{"score":0.7,"updatedAt":"2024-03-01T00:00:00Z"}}}`,
			changed: true,
		},
		{
			name:    "non-leaf owning the title blocks the rename",
			in:      `{"Алгебра":{"Базовый":{"Дроби":"note","Дроби.":{"attempts":1}}}}`,
			want:    `{"Алгебра":{"Базовый":{"Дроби":"note","Дроби.":{"attempts":1}}}}`,
			changed: false,
		},
		{
			name:    "fresh flat topics without score stay intact",
			in:      `{"Физика":{"Кинематика":{"attempts":2}}}`,
			want:    `{"Физика":{"Кинематика":{"attempts":2}}}`,
			changed: false,
		},
		{
			name:    "canonical map is untouched",
			in:      `{"Математика":{"Дроби":{"score":0.5}},"meta":"v2"}`,
			want:    `{"meta":"v2","Математика":{"Дроби":{"score":0.5}}}`,
			changed: false,
		},
	}
	for _, tc := range cases {
		out, changed := m.KnowledgeMap(mustDecode(t, tc.in))
		if changed != tc.changed {
			t.Fatalf("%s: changed want=%v got=%v", tc.name, tc.changed, changed)
		}
		if got := mustEncode(t, out); got != tc.want {
			t.Fatalf("%s:\nwant=%s\ngot= %s", tc.name, tc.want, got)
		}
		if _, again := m.KnowledgeMap(out); again {
			t.Fatalf("%s: second run reported a change", tc.name)
		}
	}
}

func TestGoalsMigrator(t *testing.T) {
	m := NewMigrators(nil)
	in := mustDecode(t, `[
		{"id":"a","topic":"","topicTitle":"Тема: Дроби"},
		{"id":"b","topic":"10–11 класс","topicTitle":"изучено"},
		{"id":"c","topic":"Проценты"}
	]`)
	out, changed := m.Goals(in)
	if !changed {
		t.Fatalf("changed: want=true got=false")
	}
	want := `[{"id":"a","topic":"Дроби","topicTitle":"Дроби"},{"id":"b","topic":"Базовые темы"},{"id":"c","topic":"Проценты"}]`
	if got := mustEncode(t, out); got != want {
		t.Fatalf("goals:\nwant=%s\ngot= %s", want, got)
	}
	if _, again := m.Goals(out); again {
		t.Fatalf("second run reported a change")
	}
}

func TestLibraryCandidatePrecedence(t *testing.T) {
	m := NewMigrators(nil)
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "nested explain title wins",
			in:   `{"topic":"Проценты","meta":{"explainTopicTitle":"Дроби"}}`,
			want: `{"meta":{"explainTopicTitle":"Дроби"},"topic":"Дроби"}`,
		},
		{
			name: "topic before topicTitle, topicTitle follows",
			in:   `{"topic":"Проценты","topicTitle":"Дроби"}`,
			want: `{"topic":"Проценты","topicTitle":"Проценты"}`,
		},
		{
			name: "flat explain title as last resort",
			in:   `{"topic":"без темы","explainTopicTitle":"Логарифмы"}`,
			want: `{"explainTopicTitle":"Логарифмы","topic":"Логарифмы"}`,
		},
		{
			name: "unusable nested title defers to topic",
			in:   `{"topic":"Алгебра","meta":{"explainTopicTitle":"в процессе"}}`,
			want: `{"meta":{"explainTopicTitle":"Алгебра"},"topic":"Алгебра"}`,
		},
		{
			name: "stale topicTitle cleared with baseline topic",
			in:   `{"topic":"9 класс","topicTitle":"изучено"}`,
			want: `{"topic":"Базовые темы"}`,
		},
		{
			name: "nested title cleared when nothing is extractable",
			in:   `{"topic":"общее","meta":{"explainTopicTitle":"в процессе","source":"chat"}}`,
			want: `{"meta":{"source":"chat"},"topic":"Базовые темы"}`,
		},
	}
	for _, tc := range cases {
		list := []any{mustDecode(t, tc.in)}
		out, _ := m.Library(list)
		got := mustEncode(t, out.([]any)[0])
		if got != tc.want {
			t.Fatalf("%s:\nwant=%s\ngot= %s", tc.name, tc.want, got)
		}
	}
}

func TestContextMigratorKeepsEmptyTopic(t *testing.T) {
	m := NewMigrators(nil)
	out, changed := m.Context(mustDecode(t, `{"currentTopic":"","topic":"__none__","mode":"chat"}`))
	if !changed {
		t.Fatalf("changed: want=true got=false")
	}
	want := map[string]any{"currentTopic": "", "topic": "", "mode": "chat"}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
}

func TestCurrentGoalMigrator(t *testing.T) {
	m := NewMigrators(nil)
	out, changed := m.CurrentGoal(mustDecode(t, `{"topic":"Тест: Логарифмы","progress":2}`))
	if !changed {
		t.Fatalf("changed: want=true got=false")
	}
	if got := mustEncode(t, out); got != `{"progress":2,"topic":"Логарифмы"}` {
		t.Fatalf("current goal: got=%s", got)
	}
	if _, changed := m.CurrentGoal(nil); changed {
		t.Fatalf("nil goal: want unchanged")
	}
}

func TestLastTopicCandidate(t *testing.T) {
	m := NewMigrators(nil)
	cases := []struct {
		raw    string
		want   string
		action CandidateAction
	}{
		{"Дроби", "Дроби", CandidateKeep},
		{" Дроби ", " Дроби ", CandidateKeep},
		{"", "", CandidateKeep},
		{"«Проценты»", "Проценты", CandidateRewrite},
		{"без темы", "", CandidateDelete},
		{"  ", "", CandidateDelete},
	}
	for _, tc := range cases {
		got, action := m.LastTopicCandidate(tc.raw)
		if got != tc.want || action != tc.action {
			t.Fatalf("%q: want=(%q,%v) got=(%q,%v)", tc.raw, tc.want, tc.action, got, action)
		}
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	if _, err := decodeJSON(`{} {}`); err == nil {
		t.Fatalf("want error for trailing data")
	}
	if _, err := decodeJSON(`  {"a":1}  `); err != nil {
		t.Fatalf("surrounding whitespace: %v", err)
	}
}
