package envutil

import "testing"

func TestStr(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  value  ")
	if got := Str("ENVUTIL_TEST_STR", "def"); got != "value" {
		t.Fatalf("Str: expected trimmed value, got %q", got)
	}
	if got := Str("ENVUTIL_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("Str: expected default, got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 42 {
		t.Fatalf("Int: expected 42, got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT", 7); got != 7 {
		t.Fatalf("Int: expected default on parse failure, got %d", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"0": false, "false": false, "No": false, "off": false,
	}
	for raw, want := range cases {
		t.Setenv("ENVUTIL_TEST_BOOL", raw)
		if got := Bool("ENVUTIL_TEST_BOOL", !want); got != want {
			t.Fatalf("Bool(%q): expected %v, got %v", raw, want, got)
		}
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	if got := Bool("ENVUTIL_TEST_BOOL", true); got != true {
		t.Fatalf("Bool: expected default on unknown value, got %v", got)
	}
}
