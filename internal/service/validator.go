package service

import (
	"strings"
	"unicode"
)

// OptionMatcher maps a submitted choice onto one of the displayed options.
// Matching ignores case, surrounding spaces, repeated whitespace and
// full-width parentheses, so HTTP clients may echo options loosely.
type OptionMatcher struct{}

// NewOptionMatcher creates a new OptionMatcher.
func NewOptionMatcher() *OptionMatcher {
	return &OptionMatcher{}
}

// Canonical returns the option equal to choice after normalization, or
// choice unchanged when no option matches.
func (m *OptionMatcher) Canonical(choice string, options []string) string {
	want := m.normalize(choice)
	if want == "" {
		return choice
	}

	for _, option := range options {
		if m.normalize(option) == want {
			return option
		}
	}
	return choice
}

// normalize normalizes a string for comparison.
func (m *OptionMatcher) normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '（':
			return '('
		case '）':
			return ')'
		case '’', '‘', 'ʼ':
			return '\''
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)

	// Remove extra whitespace
	return strings.Join(strings.Fields(s), " ")
}
