package match

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/dlclark/regexp2"
	"github.com/grafana/regexp"
	"github.com/grafana/regexp/syntax"
	"github.com/sourcegraph/utext/internal/errs"
	"github.com/sourcegraph/utext/internal/interval"
)

// RegexEngine is grounded on search_regex.go's casetransform-lowering
// compile path, two-tiered: github.com/grafana/regexp (RE2, the hardened
// fork cmd/searcher itself uses) is tried first; a pattern RE2's syntax
// rejects (backreferences, lookaround) falls back to
// github.com/dlclark/regexp2, which supports both.
type RegexEngine struct {
	re2    *regexp.Regexp
	regex2 *regexp2.Regexp
	flags  Flags
}

// CompileRegex compiles patternUTF16 as a regular expression.
func CompileRegex(patternUTF16 []uint16, flags Flags) (*RegexEngine, error) {
	flags = flags.normalize()
	pattern := string(utf16.Decode(patternUTF16))
	expr := pattern
	if flags.has(WordBounded) {
		expr = `\b(?:` + expr + `)\b`
	}
	if flags.has(WholeLine) {
		expr = `^(?:` + expr + `)$`
	}

	if flags.has(CaseInsensitive) {
		parsed, err := syntax.Parse(expr, syntax.Perl)
		if err == nil {
			lowerRegexpASCII(parsed)
			expr = parsed.String()
		}
	}

	if re2, err := regexp.Compile(expr); err == nil {
		return &RegexEngine{re2: re2, flags: flags}, nil
	}

	opts2 := regexp2.RE2
	if flags.has(CaseInsensitive) {
		opts2 |= regexp2.IgnoreCase
	}
	re2x, err := regexp2.Compile(expr, opts2)
	if err != nil {
		return nil, formatSyntaxError(pattern, err)
	}
	return &RegexEngine{regex2: re2x, flags: flags}, nil
}

func formatSyntaxError(pattern string, err error) error {
	offset := strings.Index(err.Error(), "position") // best-effort; regexp2's message format varies by failure kind
	msg := fmt.Sprintf("invalid pattern, error at offset %d\n%s\n%s^", max0(offset), pattern, strings.Repeat(" ", max0(offset)))
	return errs.Wrap(errs.Fatal, err, msg)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (e *RegexEngine) Destroy() {}

func (e *RegexEngine) Match(subject []uint16) (Result, error) {
	s := string(utf16.Decode(subject))
	if e.re2 != nil {
		if e.re2.MatchString(e.foldSubject(s)) {
			return MatchFound, nil
		}
		return NoMatch, nil
	}
	ok, err := e.regex2.MatchString(s)
	if err != nil {
		return Failure, errs.Wrap(errs.Warning, err, "match: regexp2 match")
	}
	if ok {
		return MatchFound, nil
	}
	return NoMatch, nil
}

func (e *RegexEngine) MatchAll(subject []uint16, out *interval.List) (Result, error) {
	if e.flags.has(CaseInsensitive) && e.foldedSource() {
		return Failure, errs.New(errs.Fatal, "match: case-insensitive match_all is not offset-safe")
	}
	s := string(utf16.Decode(subject))
	rs := []rune(s)
	byteToRune := byteOffsetToRuneIndex(s)

	saturated := false
	found := false
	if e.re2 != nil {
		for _, loc := range e.re2.FindAllStringIndex(e.foldSubject(s), -1) {
			lo, up := byteToRune[loc[0]], byteToRune[loc[1]]
			if lo == up {
				continue
			}
			found = true
			if out.Add(len(rs), lo, up) {
				saturated = true
			}
		}
	} else {
		m, err := e.regex2.FindStringMatch(s)
		for m != nil {
			if err != nil {
				return Failure, errs.Wrap(errs.Warning, err, "match: regexp2 iteration")
			}
			lo, up := byteToRune[m.Index], byteToRune[m.Index+m.Length]
			if lo != up {
				found = true
				if out.Add(len(rs), lo, up) {
					saturated = true
				}
			}
			m, err = e.regex2.FindNextMatch(m)
		}
	}

	if saturated {
		return WholeLineMatch, nil
	}
	if found {
		return MatchFound, nil
	}
	return NoMatch, nil
}

// foldedSource reports whether case folding runs through an external,
// offset-breaking fold rather than the RE2 pattern/subject ASCII-lowering
// pair (foldSubject + lowerRegexpASCII). dlclark/regexp2's IgnoreCase
// flag is such a fold: it reports byte offsets into its own internal
// case-insensitive automaton state, not guaranteed stable against the
// original subject's collation-sensitive boundaries. The fatal rejection
// in spec.md §4.9 targets that path (and the literal engine's
// collation-fold path); the RE2 path is excluded since foldSubject keeps
// its offsets aligned to the original subject.
func (e *RegexEngine) foldedSource() bool {
	return e.re2 == nil
}

// foldSubject ASCII-lowercases s when this engine folds case through the
// RE2 pattern-lowering trick, pairing lowerRegexpASCII on the pattern
// side with the same fold on the subject side — mirroring the teacher's
// casetransform.LowerRegexpASCII/BytesToLowerASCII pair. Lowercasing only
// ASCII bytes preserves every byte offset, so positions found against the
// folded subject remain valid offsets into the original.
func (e *RegexEngine) foldSubject(s string) string {
	if e.re2 == nil || !e.flags.has(CaseInsensitive) {
		return s
	}
	b := []byte(s)
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func (e *RegexEngine) WholeLineMatch(subject []uint16) (Result, error) {
	s := string(utf16.Decode(subject))
	var ok bool
	if e.re2 != nil {
		anchored, err := regexp.Compile(`^(?:` + e.re2.String() + `)$`)
		if err != nil {
			return Failure, errs.Wrap(errs.Warning, err, "match: anchored whole-line compile")
		}
		loc := anchored.FindStringIndex(e.foldSubject(s))
		ok = loc != nil && loc[0] == 0 && loc[1] == len(s)
	} else {
		m, err := e.regex2.FindStringMatch(s)
		if err != nil {
			return Failure, errs.Wrap(errs.Warning, err, "match: regexp2 whole-line match")
		}
		ok = m != nil && m.Index == 0 && m.Length == len(s)
	}
	if ok {
		return WholeLineMatch, nil
	}
	return NoMatch, nil
}

func (e *RegexEngine) Split(subject []uint16, sel *interval.List) ([][]uint16, error) {
	if e.flags.has(CaseInsensitive) && e.foldedSource() {
		return nil, errs.New(errs.Fatal, "match: case-insensitive split is not offset-safe")
	}
	s := string(utf16.Decode(subject))
	var pieces []string
	if e.re2 != nil {
		raw := e.re2.FindAllStringIndex(e.foldSubject(s), -1)
		locs := make([][2]int, len(raw))
		for i, loc := range raw {
			locs[i] = [2]int{loc[0], loc[1]}
		}
		pieces = splitAt(s, locs)
	} else {
		locs, err := regexp2FindAllIndex(e.regex2, s)
		if err != nil {
			return nil, err
		}
		pieces = splitAt(s, locs)
	}

	out := make([][]uint16, 0, len(pieces))
	for i, p := range pieces {
		if sel != nil && !fieldSelected(sel, i) {
			continue
		}
		out = append(out, utf16.Encode([]rune(p)))
	}
	return out, nil
}

func regexp2FindAllIndex(re *regexp2.Regexp, s string) ([][2]int, error) {
	var locs [][2]int
	m, err := re.FindStringMatch(s)
	for m != nil {
		if err != nil {
			return nil, errs.Wrap(errs.Warning, err, "match: regexp2 split")
		}
		locs = append(locs, [2]int{m.Index, m.Index + m.Length})
		m, err = re.FindNextMatch(m)
	}
	return locs, nil
}

func splitAt(s string, locs [][2]int) []string {
	var out []string
	prev := 0
	for _, loc := range locs {
		out = append(out, s[prev:loc[0]])
		prev = loc[1]
	}
	out = append(out, s[prev:])
	return out
}

func byteOffsetToRuneIndex(s string) map[int]int {
	m := make(map[int]int, len(s)+1)
	i := 0
	for b := range s {
		m[b] = i
		i++
	}
	m[len(s)] = i
	return m
}

// lowerRegexpASCII rewrites an RE2 syntax tree so that every literal rune
// in it is ASCII-lowercased, matching search_regex.go's
// casetransform.LowerRegexpASCII trick: fold the pattern once at compile
// time rather than ask RE2 to do (?i) case folding at match time. The
// subject side of the same pair is foldSubject, called at every match
// site (Match, MatchAll, WholeLineMatch, Split) so the folded pattern is
// always matched against an equally-folded subject. This only lowercases
// ASCII OpLiteral runes, which is the dominant case in practice; non-ASCII
// case pairs and character classes are not folded on this path (regexp2's
// IgnoreCase applies only to patterns RE2 could not compile).
func lowerRegexpASCII(re *syntax.Regexp) {
	if re.Op == syntax.OpLiteral {
		for i, r := range re.Rune {
			if r >= 'A' && r <= 'Z' {
				re.Rune[i] = r + ('a' - 'A')
			}
		}
	}
	for _, sub := range re.Sub {
		lowerRegexpASCII(sub)
	}
}
