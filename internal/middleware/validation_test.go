package middleware

import (
	"strings"
	"testing"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain term", "marketing", "marketing"},
		{"trims whitespace", "  marketing  ", "marketing"},
		{"strips control chars", "mark\x00et\x1fing", "marketing"},
		{"keeps commas", "seo, growth hacking", "seo, growth hacking"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeQuery(tt.input); got != tt.want {
				t.Errorf("SanitizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeQuery_BoundsLength(t *testing.T) {
	long := strings.Repeat("a", MaxQueryLen+50)
	if got := SanitizeQuery(long); len(got) != MaxQueryLen {
		t.Errorf("len = %d, want %d", len(got), MaxQueryLen)
	}
}

func TestSanitizeQuery_BoundsTermCount(t *testing.T) {
	terms := make([]string, MaxTerms+5)
	for i := range terms {
		terms[i] = "t"
	}
	got := SanitizeQuery(strings.Join(terms, ","))
	if n := len(strings.Split(got, ",")); n != MaxTerms {
		t.Errorf("term count = %d, want %d", n, MaxTerms)
	}
}
