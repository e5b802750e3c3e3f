package respserver

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		// Literals
		{"", "", true},
		{"", "a", false},
		{"foo", "foo", true},
		{"foo", "bar", false},
		{"foo", "foobar", false},

		// Star
		{"*", "", true},
		{"*", "anything", true},
		{"user:*", "user:42", true},
		{"user:*", "order:42", false},
		{"*:42", "user:42", true},
		{"u*r:*", "user:42", true},
		{"**", "x", true},
		{"a*b*c", "aXbYc", true},
		{"a*b*c", "aXcYb", false},

		// Question mark
		{"?", "a", true},
		{"?", "", false},
		{"?", "ab", false},
		{"h?llo", "hello", true},
		{"h?llo", "hllo", false},

		// Classes
		{"[abc]", "b", true},
		{"[abc]", "d", false},
		{"[a-c]", "b", true},
		{"[a-c]", "d", false},
		{"[^abc]", "d", true},
		{"[^abc]", "a", false},
		{"user:[0-9]", "user:7", true},
		{"user:[0-9]", "user:x", false},
		{"[", "x", false}, // unterminated class

		// Escapes
		{`\*`, "*", true},
		{`\*`, "x", false},
		{`a\?c`, "a?c", true},
		{`a\?c`, "abc", false},

		// Combined
		{"h[ae]llo*", "hello world", true},
		{"h[ae]llo*", "hillo world", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.s, func(t *testing.T) {
			if got := Match(tt.pattern, tt.s); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
			}
		})
	}
}
