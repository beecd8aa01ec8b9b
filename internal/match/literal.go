package match

import (
	"strings"
	"unicode/utf16"

	"github.com/sourcegraph/utext/internal/errs"
	"github.com/sourcegraph/utext/internal/interval"
	"github.com/sourcegraph/utext/internal/unicodesvc"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// LiteralEngine is grounded on cmd/searcher/search/search_regex.go's
// readerGrep: a literal pattern compiled once, matched by plain substring
// search when it is case-sensitive and not word-bounded, and through a
// collation-aware search handle (golang.org/x/text/search,
// golang.org/x/text/collate) for word-bounded or non-whole-line
// case-insensitive matching — the spec's "collation-aware string-search
// handle" requirement.
type LiteralEngine struct {
	pattern string
	flags   Flags

	collator *collate.Collator
	searcher *search.Matcher
	compiled *search.Pattern
}

// CompileLiteral compiles patternUTF16 with flags.
func CompileLiteral(patternUTF16 []uint16, flags Flags) (*LiteralEngine, error) {
	flags = flags.normalize()
	e := &LiteralEngine{
		pattern: string(utf16.Decode(patternUTF16)),
		flags:   flags,
	}

	needsCollated := flags.has(WordBounded) || (flags.has(CaseInsensitive) && !flags.has(WholeLine))
	if needsCollated {
		strength := collate.Default
		if flags.has(CaseInsensitive) {
			strength = collate.Primary
		}
		e.collator = collate.New(language.Und, strength)
		e.searcher = search.New(language.Und, optsFor(flags))
		e.compiled = e.searcher.CompileString(e.pattern)
	}

	return e, nil
}

func optsFor(flags Flags) search.Option {
	if flags.has(CaseInsensitive) {
		return search.IgnoreCase
	}
	return search.Loose
}

func (e *LiteralEngine) Destroy() {}

// Match implements Engine.Match.
func (e *LiteralEngine) Match(subject []uint16) (Result, error) {
	s := string(utf16.Decode(subject))
	if e.pattern == "" {
		return e.matchEmptyPattern(s)
	}
	if e.flags.has(WholeLine) {
		res, err := e.WholeLineMatch(subject)
		if res == WholeLineMatch {
			res = MatchFound
		}
		return res, err
	}
	if e.compiled != nil {
		start, _ := e.compiled.IndexString(s)
		if start < 0 {
			return NoMatch, nil
		}
		return MatchFound, nil
	}
	if strings.Contains(s, e.pattern) {
		return MatchFound, nil
	}
	return NoMatch, nil
}

func (e *LiteralEngine) matchEmptyPattern(s string) (Result, error) {
	if !e.flags.has(WordBounded) {
		return MatchFound, nil
	}
	if s == "" {
		return MatchFound, nil
	}
	rs := []rune(s)
	for i := 0; i < len(rs)-1; i++ {
		if unicodesvc.WordBoundaryBefore(rs[i], rs[i+1]) {
			return MatchFound, nil
		}
	}
	if unicodesvc.WordBoundaryBefore(-1, rs[0]) || unicodesvc.WordBoundaryBefore(rs[len(rs)-1], -1) {
		return MatchFound, nil
	}
	return NoMatch, nil
}

// MatchAll implements Engine.MatchAll.
func (e *LiteralEngine) MatchAll(subject []uint16, out *interval.List) (Result, error) {
	if e.flags.has(CaseInsensitive) && !e.flags.has(WholeLine) {
		// The stored pattern path for case-insensitive search folds
		// through the collator; offsets it reports are collation
		// offsets, not code-unit offsets, so position-reporting
		// operations are rejected per spec.md §4.9.
		return Failure, errs.New(errs.Fatal, "match: case-insensitive match_all is not offset-safe")
	}

	rs := []rune(string(utf16.Decode(subject)))
	if e.pattern == "" {
		return e.matchAllEmptyPattern(rs, out)
	}

	patRunes := []rune(e.pattern)
	pos := 0
	saturated := false
	for pos <= len(rs)-len(patRunes) {
		idx := indexRunes(rs[pos:], patRunes)
		if idx < 0 {
			break
		}
		lo := pos + idx
		up := lo + len(patRunes)
		if e.flags.has(WordBounded) && !isWordBoundaryMatch(rs, lo, up) {
			pos = lo + 1
			continue
		}
		if out.Add(len(rs), lo, up) {
			saturated = true
		}
		pos = up
		if len(patRunes) == 0 {
			pos++
		}
	}
	if saturated {
		return WholeLineMatch, nil
	}
	if out.Len() > 0 {
		return MatchFound, nil
	}
	return NoMatch, nil
}

func (e *LiteralEngine) matchAllEmptyPattern(rs []rune, out *interval.List) (Result, error) {
	if len(rs) == 0 {
		// An empty subject always counts as one match, word-bound or
		// not — there's simply nothing to record, since the interval
		// list cannot hold a zero-length span.
		return MatchFound, nil
	}
	if !e.flags.has(WordBounded) {
		out.Add(len(rs), 0, len(rs))
		return WholeLineMatch, nil
	}
	found := false
	for i := 0; i <= len(rs); i++ {
		var before, after rune = -1, -1
		if i > 0 {
			before = rs[i-1]
		}
		if i < len(rs) {
			after = rs[i]
		}
		if unicodesvc.WordBoundaryBefore(before, after) {
			out.Add(len(rs), i, i+1)
			found = true
			break
		}
	}
	if found {
		return MatchFound, nil
	}
	return NoMatch, nil
}

func isWordBoundaryMatch(rs []rune, lo, up int) bool {
	var before, after rune = -1, -1
	if lo > 0 {
		before = rs[lo-1]
	}
	var first rune = -1
	if lo < up {
		first = rs[lo]
	}
	if lo < len(rs) && !unicodesvc.WordBoundaryBefore(before, first) {
		return false
	}
	if up < len(rs) {
		after = rs[up]
	}
	var last rune = -1
	if up > lo {
		last = rs[up-1]
	}
	return unicodesvc.WordBoundaryBefore(last, after)
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// WholeLineMatch implements Engine.WholeLineMatch.
func (e *LiteralEngine) WholeLineMatch(subject []uint16) (Result, error) {
	s := string(utf16.Decode(subject))
	if e.flags.has(CaseInsensitive) {
		if e.collator == nil {
			e.collator = collate.New(language.Und, collate.Primary)
		}
		if e.collator.CompareString(e.pattern, s) == 0 {
			return WholeLineMatch, nil
		}
		return NoMatch, nil
	}
	if s == e.pattern {
		return WholeLineMatch, nil
	}
	return NoMatch, nil
}

// Split implements Engine.Split.
func (e *LiteralEngine) Split(subject []uint16, sel *interval.List) ([][]uint16, error) {
	if e.flags.has(CaseInsensitive) && !e.flags.has(WholeLine) {
		return nil, errs.New(errs.Fatal, "match: case-insensitive split is not offset-safe")
	}
	rs := []rune(string(utf16.Decode(subject)))
	if e.pattern == "" {
		return [][]uint16{subject}, nil
	}
	patRunes := []rune(e.pattern)
	var fields [][]rune
	start := 0
	for {
		idx := indexRunes(rs[start:], patRunes)
		if idx < 0 {
			fields = append(fields, rs[start:])
			break
		}
		fields = append(fields, rs[start:start+idx])
		start = start + idx + len(patRunes)
	}

	out := make([][]uint16, 0, len(fields))
	for i, f := range fields {
		if sel != nil && !fieldSelected(sel, i) {
			continue
		}
		out = append(out, utf16.Encode(f))
	}
	return out, nil
}

func fieldSelected(sel *interval.List, i int) bool {
	for _, sp := range sel.Spans() {
		if i >= sp.Lower && i < sp.Upper {
			return true
		}
	}
	return false
}
