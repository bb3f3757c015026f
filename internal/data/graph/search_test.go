package graph

import "testing"

func TestSubstringPattern(t *testing.T) {
	cases := []struct {
		q    string
		ci   bool
		want string
	}{
		{"topic", true, "(?i).*topic.*"},
		{"topic", false, ".*topic.*"},
		{"a.b", true, `(?i).*a\.b.*`},
		{"x(y)*", false, `.*x\(y\)\*.*`},
		{"", true, "(?i).*.*"},
	}
	for _, tc := range cases {
		if got := substringPattern(tc.q, tc.ci); got != tc.want {
			t.Fatalf("substringPattern(%q, %v) = %q, want %q", tc.q, tc.ci, got, tc.want)
		}
	}
}
