// Package lineterm recognizes the Unicode line terminators the reader's
// line segmenter and ustring's Chomp must agree on: LF, CR, the CR+LF
// pair (treated as one terminator), VT, FF, NEL, LS, and PS.
package lineterm

const (
	lf  = 0x000A
	vt  = 0x000B
	ff  = 0x000C
	cr  = 0x000D
	nel = 0x0085
	ls  = 0x2028
	ps  = 0x2029
)

// IsTerminator reports whether c is (the first code unit of) a line
// terminator on its own — true for every recognized terminator except
// that a CR must be checked with MatchAt to discover a following LF.
func IsTerminator(c uint16) bool {
	switch c {
	case lf, vt, ff, cr, nel, ls, ps:
		return true
	default:
		return false
	}
}

// MatchAt returns the length (in code units) of the line terminator
// starting at units[pos], or 0 if none starts there. A CR immediately
// followed by an LF is reported as one two-unit terminator.
func MatchAt(units []uint16, pos int) int {
	if pos >= len(units) {
		return 0
	}
	c := units[pos]
	if !IsTerminator(c) {
		return 0
	}
	if c == cr && pos+1 < len(units) && units[pos+1] == lf {
		return 2
	}
	return 1
}

// IndexAny returns the offset of the first line terminator in
// units[from:], or -1 if none is present. It does not consume a CR whose
// matching LF has not yet been staged — callers must handle that boundary
// case themselves (see reader.Reader.ReadLine).
func IndexAny(units []uint16, from int) int {
	for i := from; i < len(units); i++ {
		if IsTerminator(units[i]) {
			return i
		}
	}
	return -1
}
