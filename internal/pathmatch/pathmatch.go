// Package pathmatch compiles the include/exclude glob patterns
// cmd/searcher's request protocol carries (protocol.PatternInfo's
// IncludePatterns/ExcludePattern) into a single matcher, the same
// compile-once-reuse-per-source shape search_regex.go's readerGrep uses
// for its compiled regexp.
package pathmatch

import (
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether a source name should be searched.
type Matcher struct {
	include       []glob.Glob
	exclude       glob.Glob
	caseSensitive bool
}

// CompileOptions controls how patterns are interpreted. Patterns are
// globs (not regexps); CaseSensitive controls case folding only.
type CompileOptions struct {
	CaseSensitive bool
}

// Compile builds a Matcher from the AND of include patterns and the
// negation of the exclude pattern.
func Compile(include []string, exclude string, opts CompileOptions) (*Matcher, error) {
	norm := func(s string) string {
		if opts.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	m := &Matcher{caseSensitive: opts.CaseSensitive}
	for _, pat := range include {
		g, err := glob.Compile(norm(pat))
		if err != nil {
			return nil, err
		}
		m.include = append(m.include, g)
	}
	if exclude != "" {
		g, err := glob.Compile(norm(exclude))
		if err != nil {
			return nil, err
		}
		m.exclude = g
	}
	return m, nil
}

// MatchPath reports whether name satisfies every include pattern and
// does not satisfy the exclude pattern.
func (m *Matcher) MatchPath(name string) bool {
	if m == nil {
		return true
	}
	if !m.caseSensitive {
		name = strings.ToLower(name)
	}
	for _, g := range m.include {
		if !g.Match(name) {
			return false
		}
	}
	if m.exclude != nil && m.exclude.Match(name) {
		return false
	}
	return true
}

// String renders the matcher for tracing/logging.
func (m *Matcher) String() string {
	if m == nil {
		return "*"
	}
	n := len(m.include)
	if m.exclude != nil {
		n++
	}
	if n == 0 {
		return "*"
	}
	return "pathmatch(" + strconv.Itoa(n) + " patterns)"
}
