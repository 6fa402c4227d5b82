package domain

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "distill.dev/pkg/distill/internal/model"
)

// Matcher tests slash-separated relative paths against a list of globs.
//
// Patterns containing a slash are matched against the whole path; patterns
// without one are matched against the base name, so "main.py" matches
// "main.py" and "pkg/main.py" alike.
type Matcher struct {
	patterns []string
}

// NewMatcher validates patterns and returns a Matcher for them.
func NewMatcher(patterns []string) (*Matcher, error) {
	cleaned := make([]string, 0, len(patterns))

	for _, p := range patterns {
		p = strings.TrimSpace(filepathToSlash(p))
		if p == "" {
			continue
		}

		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}

		cleaned = append(cleaned, p)
	}

	return &Matcher{patterns: cleaned}, nil
}

// Patterns returns the normalized patterns.
func (mt *Matcher) Patterns() []string {
	return mt.patterns
}

// Match reports whether any pattern matches p.
func (mt *Matcher) Match(p m.Path) bool {
	_, ok := mt.FirstMatch(p)
	return ok
}

// FirstMatch returns the first pattern (in configuration order) matching p.
func (mt *Matcher) FirstMatch(p m.Path) (string, bool) {
	if mt == nil {
		return "", false
	}

	for _, pattern := range mt.patterns {
		if matchPattern(pattern, string(p)) {
			return pattern, true
		}
	}

	return "", false
}

func matchPattern(pattern, p string) bool {
	p = filepathToSlash(p)

	target := p
	if !strings.Contains(pattern, "/") {
		target = path.Base(p)
	}

	ok, err := doublestar.Match(pattern, target)

	return err == nil && ok
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
