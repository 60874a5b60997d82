package envutil

import "testing"

func TestString(t *testing.T) {
	t.Setenv("NOOLIX_TEST_STR", "  value ")
	if got := String("NOOLIX_TEST_STR", "def"); got != "value" {
		t.Fatalf("String: want=%q got=%q", "value", got)
	}
	t.Setenv("NOOLIX_TEST_STR", "   ")
	if got := String("NOOLIX_TEST_STR", "def"); got != "def" {
		t.Fatalf("String blank: want=%q got=%q", "def", got)
	}
}

func TestIntAndFloat(t *testing.T) {
	t.Setenv("NOOLIX_TEST_NUM", "12")
	if got := Int("NOOLIX_TEST_NUM", 3); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
	if got := Float("NOOLIX_TEST_NUM", 0.5); got != 12 {
		t.Fatalf("Float: want=12 got=%v", got)
	}
	t.Setenv("NOOLIX_TEST_NUM", "x")
	if got := Int("NOOLIX_TEST_NUM", 3); got != 3 {
		t.Fatalf("Int invalid: want=3 got=%d", got)
	}
	if got := Float("NOOLIX_TEST_NUM", 0.5); got != 0.5 {
		t.Fatalf("Float invalid: want=0.5 got=%v", got)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"on", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		t.Setenv("NOOLIX_TEST_BOOL", tc.raw)
		if got := Bool("NOOLIX_TEST_BOOL", tc.def); got != tc.want {
			t.Fatalf("Bool(%q, %v): want=%v got=%v", tc.raw, tc.def, tc.want, got)
		}
	}
}
