// Package keywords detects group messages that talk about meeting people.
package keywords

import (
	"fmt"
	"regexp"
	"strings"
)

// Default is the built-in trigger list.
var Default = []string{
	"rencontrer",
	"rencontre",
	"célibataire",
	"copine",
	"copain",
	"je cherche une fille",
	"je cherche un mec",
	"j'ai envie de rencontrer",
	"single",
	"girlfriend",
	"boyfriend",
	"looking for a date",
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

// Matcher matches text against substrings and regular expressions.
type Matcher struct {
	words    []string
	patterns []*regexp.Regexp
}

// New builds a matcher. Words are compared case-insensitively; patterns are
// compiled as given, so callers add (?i) themselves when needed.
func New(words []string, patterns ...string) (*Matcher, error) {
	m := &Matcher{}
	for _, w := range words {
		w = normalize(w)
		if w != "" {
			m.words = append(m.words, w)
		}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile keyword pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Match reports the first keyword or pattern found in text.
func (m *Matcher) Match(text string) (string, bool) {
	norm := normalize(text)
	if norm == "" {
		return "", false
	}
	for _, w := range m.words {
		if strings.Contains(norm, w) {
			return w, true
		}
	}
	for _, re := range m.patterns {
		if re.MatchString(text) {
			return re.String(), true
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.TrimSpace(apostrophes.Replace(strings.ToLower(s)))
}
