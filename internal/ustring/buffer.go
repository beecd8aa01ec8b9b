// Package ustring implements the dynamic UTF-16 string buffer described by
// the reader/match core: an owned, resizable sequence of UTF-16 code units
// with capacity always a power of two, and with a trailing NUL code unit
// invariant tracked one past the logical length (for parity with the
// spec's C-string interop requirement — nothing in this Go port actually
// consumes that NUL, so it is checked as an invariant rather than exposed
// as a physical array slot consumers must not overwrite; see DESIGN.md
// Open Questions).
package ustring

import "unicode/utf16"

// minCapacity is the smallest capacity a non-empty Buffer ever holds.
const minCapacity = 16

// Buffer is an owned sequence of UTF-16 code units.
type Buffer struct {
	units []uint16
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// NewSized returns an empty Buffer pre-reserved to hold at least n code
// units without reallocating.
func NewSized(n int) *Buffer {
	b := &Buffer{}
	b.reserve(n)
	return b
}

// DupFrom copies units into a new, owned Buffer.
func DupFrom(units []uint16) *Buffer {
	b := &Buffer{}
	b.reserve(len(units))
	b.units = append(b.units[:0], units...)
	b.setNul()
	return b
}

// Adopt takes ownership of units. Their backing array is reused when it
// has spare capacity for the trailing NUL; otherwise the units are copied
// into a new power-of-two array. The caller must not use units again
// after calling Adopt.
func Adopt(units []uint16) *Buffer {
	b := &Buffer{units: units}
	b.reserve(len(units))
	b.setNul()
	return b
}

// Len returns the number of code units in the buffer (not code points).
func (b *Buffer) Len() int { return len(b.units) }

// Cap returns the current power-of-two capacity.
func (b *Buffer) Cap() int { return cap(b.units) }

// Units returns the buffer's live code units. The returned slice aliases
// the buffer's storage and is invalidated by the next mutation.
func (b *Buffer) Units() []uint16 { return b.units }

// String decodes the buffer's code units into a Go string.
func (b *Buffer) String() string { return string(utf16.Decode(b.units)) }

func nextPow2(n int) int {
	p := minCapacity
	for p < n {
		p *= 2
	}
	return p
}

// reserve ensures cap(b.units) >= n+1 (room for the trailing NUL),
// doubling capacity by powers of two as the spec requires.
func (b *Buffer) reserve(n int) {
	need := n + 1
	if cap(b.units) >= need {
		return
	}
	newUnits := make([]uint16, len(b.units), nextPow2(need))
	copy(newUnits, b.units)
	b.units = newUnits
}

// setNul writes the trailing zero code unit one past the logical end,
// without counting it in Len.
func (b *Buffer) setNul() {
	b.reserve(len(b.units))
	full := b.units[:len(b.units)+1]
	full[len(b.units)] = 0
}

// nulInvariant reports whether the trailing-NUL invariant holds. No
// production code path calls it.
func (b *Buffer) nulInvariant() bool {
	if cap(b.units) <= len(b.units) {
		return false
	}
	full := b.units[:len(b.units)+1]
	return full[len(b.units)] == 0
}

// clone makes an independent copy of src, guarding against the case where
// src aliases b's own backing array (an "aliased insert" per the spec).
func clone(src []uint16) []uint16 {
	out := make([]uint16, len(src))
	copy(out, src)
	return out
}

// Reset truncates the buffer to zero length without releasing capacity.
func (b *Buffer) Reset() {
	b.units = b.units[:0]
	b.setNul()
}

// AppendChar appends a single BMP code unit.
func (b *Buffer) AppendChar(c uint16) {
	b.reserve(len(b.units) + 1)
	b.units = append(b.units, c)
	b.setNul()
}

// AppendChar32 appends a code point, encoding it as a surrogate pair if it
// lies outside the BMP.
func (b *Buffer) AppendChar32(cp rune) {
	if cp <= 0xFFFF {
		b.AppendChar(uint16(cp))
		return
	}
	r1, r2 := utf16.EncodeRune(cp)
	b.reserve(len(b.units) + 2)
	b.units = append(b.units, uint16(r1), uint16(r2))
	b.setNul()
}

// AppendString appends the UTF-16 encoding of a Go string.
func (b *Buffer) AppendString(s string) {
	b.AppendUnits(utf16.Encode([]rune(s)))
}

// AppendUnits appends raw UTF-16 code units, copying src first so it is
// safe even if src aliases b's own storage.
func (b *Buffer) AppendUnits(src []uint16) {
	c := clone(src)
	b.reserve(len(b.units) + len(c))
	b.units = append(b.units, c...)
	b.setNul()
}

// PrependString inserts the UTF-16 encoding of s at the start of the
// buffer.
func (b *Buffer) PrependString(s string) {
	b.InsertLen(0, utf16.Encode([]rune(s)))
}

// PrependUnits inserts raw UTF-16 code units at the start of the buffer.
func (b *Buffer) PrependUnits(src []uint16) {
	b.InsertLen(0, src)
}

// InsertLen inserts src at pos, shifting the tail right. src is copied
// first, so an aliased insert (src drawn from b's own storage) is safe.
func (b *Buffer) InsertLen(pos int, src []uint16) {
	if pos < 0 || pos > len(b.units) {
		panic("ustring: insert position out of range")
	}
	c := clone(src)
	n := len(b.units)
	b.reserve(n + len(c))
	b.units = b.units[:n+len(c)]
	copy(b.units[pos+len(c):], b.units[pos:n])
	copy(b.units[pos:], c)
	b.setNul()
}

// DeleteLen removes length code units starting at pos, shifting the tail
// left.
func (b *Buffer) DeleteLen(pos, length int) {
	if pos < 0 || length < 0 || pos+length > len(b.units) {
		panic("ustring: delete range out of bounds")
	}
	b.units = append(b.units[:pos], b.units[pos+length:]...)
	b.setNul()
}

// SubreplaceLen replaces the length code units starting at pos with repl,
// returning the resulting change in overall length (len(repl)-length).
// repl is copied first, so replacing a region with another slice of the
// same buffer is safe.
func (b *Buffer) SubreplaceLen(repl []uint16, pos, length int) int {
	if pos < 0 || length < 0 || pos+length > len(b.units) {
		panic("ustring: subreplace range out of bounds")
	}
	c := clone(repl)
	delta := len(c) - length
	n := len(b.units)
	if delta > 0 {
		b.reserve(n + delta)
		b.units = b.units[:n+delta]
		copy(b.units[pos+length+delta:], b.units[pos+length:n])
	} else if delta < 0 {
		copy(b.units[pos+len(c):], b.units[pos+length:n])
		b.units = b.units[:n+delta]
	}
	copy(b.units[pos:pos+len(c)], c)
	b.setNul()
	return delta
}
