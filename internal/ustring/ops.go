package ustring

import (
	"fmt"
	"unicode"
	"unicode/utf16"

	"github.com/sourcegraph/utext/internal/lineterm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Chomp strips exactly one line terminator from the end of the buffer,
// treating CR+LF as a single unit.
func (b *Buffer) Chomp() {
	n := len(b.units)
	if n == 0 {
		return
	}
	if n >= 2 && b.units[n-2] == 0x000D && b.units[n-1] == 0x000A {
		b.DeleteLen(n-2, 2)
		return
	}
	if lineterm.IsTerminator(b.units[n-1]) {
		b.DeleteLen(n-1, 1)
	}
}

// CutsetFunc reports whether r belongs to the set of characters Trim
// removes. The default (nil) cutset is Unicode whitespace.
type CutsetFunc func(r rune) bool

func defaultCutset(r rune) bool { return unicode.IsSpace(r) }

// LTrim removes characters belonging to cutset (default Unicode
// whitespace) from the start of the buffer.
func (b *Buffer) LTrim(cutset CutsetFunc) {
	if cutset == nil {
		cutset = defaultCutset
	}
	rs := utf16.Decode(b.units)
	i := 0
	for i < len(rs) && cutset(rs[i]) {
		i++
	}
	if i == 0 {
		return
	}
	kept := utf16.Encode(rs[i:])
	b.units = b.units[:0]
	b.AppendUnits(kept)
}

// RTrim removes characters belonging to cutset (default Unicode
// whitespace) from the end of the buffer.
func (b *Buffer) RTrim(cutset CutsetFunc) {
	if cutset == nil {
		cutset = defaultCutset
	}
	rs := utf16.Decode(b.units)
	j := len(rs)
	for j > 0 && cutset(rs[j-1]) {
		j--
	}
	if j == len(rs) {
		return
	}
	kept := utf16.Encode(rs[:j])
	b.units = b.units[:0]
	b.AppendUnits(kept)
}

// Trim removes cutset characters from both ends.
func (b *Buffer) Trim(cutset CutsetFunc) {
	b.LTrim(cutset)
	b.RTrim(cutset)
}

// NormForm selects the normalization form Normalize rewrites the buffer
// into.
type NormForm int

const (
	// NormNone leaves the buffer untouched.
	NormNone NormForm = iota
	// NormNFC rewrites the buffer into Normalization Form C.
	NormNFC
	// NormNFD rewrites the buffer into Normalization Form D.
	NormNFD
)

// Normalize rewrites the buffer in place into the requested form, backed
// by golang.org/x/text/unicode/norm — the spec's "Normalization" external
// Unicode service.
func (b *Buffer) Normalize(mode NormForm) {
	if mode == NormNone {
		return
	}
	var form norm.Form
	switch mode {
	case NormNFC:
		form = norm.NFC
	case NormNFD:
		form = norm.NFD
	default:
		return
	}
	out := form.String(b.String())
	b.units = b.units[:0]
	b.AppendString(out)
}

// CaseKind selects the full case mapping FullCase applies.
type CaseKind int

const (
	// CaseFold applies full case folding (used for case-insensitive
	// comparison).
	CaseFold CaseKind = iota
	// CaseLower applies full lowercasing.
	CaseLower
	// CaseUpper applies full uppercasing.
	CaseUpper
	// CaseTitle applies full titlecasing.
	CaseTitle
)

// FullCase writes the full (possibly length-changing) case mapping of src
// into the buffer, replacing its current contents. turkic selects the
// dotless-i fold policy for Turkic locales (e.g. Turkish İ/ı handling).
func (b *Buffer) FullCase(src []uint16, kind CaseKind, turkic bool) {
	lang := language.Und
	if turkic {
		lang = language.Turkish
	}
	var caser cases.Caser
	switch kind {
	case CaseFold:
		caser = cases.Fold(cases.Compact(lang))
	case CaseLower:
		caser = cases.Lower(lang)
	case CaseUpper:
		caser = cases.Upper(lang)
	case CaseTitle:
		caser = cases.Title(lang)
	}
	out := caser.String(string(utf16.Decode(src)))
	b.units = b.units[:0]
	b.AppendString(out)
}

// Dump replaces non-printable code points with the literal escape
// sequence 0xNNNN, and replaces tab and CR with the two-character
// escapes \t and \r. It takes two passes: the first records each unit's
// expansion and the total growth, the second writes the expanded units
// front to back into a new slice that then replaces the buffer's contents
// (the rewrite is not done inside the existing storage).
func (b *Buffer) Dump() {
	// Pass 1: compute the expanded length and per-unit expansion kind.
	type expansion struct {
		text string
		keep bool
	}
	exps := make([]expansion, len(b.units))
	extra := 0
	i := 0
	for i < len(b.units) {
		c := b.units[i]
		switch {
		case c == '\t':
			exps[i] = expansion{text: `\t`}
			extra += len(`\t`) - 1
			i++
		case c == '\r':
			exps[i] = expansion{text: `\r`}
			extra += len(`\r`) - 1
			i++
		case isSurrogatePair(b.units, i):
			cp := utf16.DecodeRune(rune(b.units[i]), rune(b.units[i+1]))
			if unicode.IsPrint(cp) {
				exps[i] = expansion{keep: true}
				exps[i+1] = expansion{keep: true}
			} else {
				text := fmt.Sprintf("0x%04X0x%04X", b.units[i], b.units[i+1])
				exps[i] = expansion{text: text}
				extra += len(text) - 2
			}
			i += 2
			continue
		default:
			r := rune(c)
			if unicode.IsPrint(r) || unicode.IsSpace(r) {
				exps[i] = expansion{keep: true}
			} else {
				text := fmt.Sprintf("0x%04X", c)
				exps[i] = expansion{text: text}
				extra += len(text) - 1
			}
			i++
		}
	}

	if extra == 0 {
		allKeep := true
		for _, e := range exps {
			if !e.keep && e.text == "" {
				continue
			}
			if !e.keep {
				allKeep = false
				break
			}
		}
		if allKeep {
			return
		}
	}

	// Pass 2: write the expansion front to back into a freshly sized
	// slice. Kept units are copied as code units, so both halves of a
	// printable surrogate pair survive unchanged.
	out := make([]uint16, 0, len(b.units)+extra)
	for idx, e := range exps {
		if e.keep {
			out = append(out, b.units[idx])
			continue
		}
		if e.text != "" {
			out = append(out, utf16.Encode([]rune(e.text))...)
		}
	}
	b.units = b.units[:0]
	b.AppendUnits(out)
}

func isSurrogatePair(units []uint16, i int) bool {
	if i+1 >= len(units) {
		return false
	}
	return utf16.IsSurrogate(rune(units[i])) && units[i] >= 0xD800 && units[i] <= 0xDBFF &&
		units[i+1] >= 0xDC00 && units[i+1] <= 0xDFFF
}
