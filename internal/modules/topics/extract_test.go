package topics

import "testing"

func TestCoerceTopicTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Квадратные уравнения", "Квадратные уравнения"},
		{"7–9 класс, Дроби", "Дроби"},
		{"без темы, изучено, Проценты, Степени", "Проценты"},
		{"Диагностика по Математика", "Математика"},
		{"Тест: квадратные уравнения", "квадратные уравнения"},
		{"7-9 класс, без темы", ""},
		{"в процессе", ""},
	}
	for _, tc := range cases {
		if got := Default().CoerceTopicTitle(tc.in); got != tc.want {
			t.Fatalf("CoerceTopicTitle(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestCanonicalTopicKey(t *testing.T) {
	cases := map[string]string{
		"Без темы":  DefaultBaselineTopic,
		"7–9 класс": DefaultBaselineTopic,
		"":          DefaultBaselineTopic,
		"Квадратные уравнения":   "Квадратные уравнения",
		"квадратные уравнения  ": "квадратные уравнения",
		DefaultBaselineTopic:     DefaultBaselineTopic,
	}
	for in, want := range cases {
		if got := Default().CanonicalTopicKey(in); got != want {
			t.Fatalf("CanonicalTopicKey(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestCanonicalTopicKeyIsDeterministicAndIdempotent(t *testing.T) {
	inputs := []string{
		"Диагностика по квадратным уравнениям",
		"«Тема: Дроби».",
		"7–9 класс, Проценты",
		"__no_topic__",
		"Тест: тест: Степени",
		"изучено, в процессе",
	}
	for _, in := range inputs {
		first := Default().CanonicalTopicKey(in)
		if again := Default().CanonicalTopicKey(in); again != first {
			t.Fatalf("CanonicalTopicKey(%q) not deterministic: %q vs %q", in, first, again)
		}
		if twice := Default().CanonicalTopicKey(first); twice != first {
			t.Fatalf("CanonicalTopicKey(%q) not idempotent: once=%q twice=%q", in, first, twice)
		}
	}
}

func TestAsString(t *testing.T) {
	if AsString("x") != "x" || AsString(1.5) != "" || AsString(nil) != "" {
		t.Fatalf("AsString should only pass strings through")
	}
}
