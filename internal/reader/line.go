package reader

import (
	"github.com/sourcegraph/utext/internal/lineterm"
	"github.com/sourcegraph/utext/internal/ustring"
)

// ReadLine clears out, then fills it with the next logical line
// (terminator included), refilling the staging buffer as needed. It
// returns false when there is nothing left to read. A CR sitting exactly
// at externalEnd is held back across a refill so a following LF can
// still be recognized as part of the same CR+LF terminator.
func (r *Reader) ReadLine(out *ustring.Buffer) (bool, error) {
	out.Reset()
	if r.EOF() {
		return false, nil
	}

	for {
		if r.ptr >= r.externalEnd {
			n, err := r.fillBuffer()
			if err != nil {
				return false, err
			}
			if n == 0 && r.EOF() {
				if out.Len() > 0 {
					r.lineno++
					return true, nil
				}
				return false, nil
			}
			if r.ptr >= r.externalEnd {
				continue
			}
		}

		termAt := lineterm.IndexAny(r.utf16Buf[:r.externalEnd], r.ptr)
		if termAt < 0 {
			out.AppendUnits(r.utf16Buf[r.ptr:r.externalEnd])
			r.ptr = r.externalEnd
			continue
		}

		out.AppendUnits(r.utf16Buf[r.ptr:termAt])

		// Hold a bare trailing CR back across a refill so MatchAt can see
		// a following LF before deciding the terminator's length.
		if termAt == r.externalEnd-1 && r.utf16Buf[termAt] == 0x000D && !r.EOF() {
			r.ptr = termAt
			n, err := r.fillBuffer()
			if err != nil {
				return false, err
			}
			if n == 0 {
				out.AppendChar(0x000D)
				r.ptr++
				r.lineno++
				return true, nil
			}
			termAt = r.ptr
		}

		termLen := lineterm.MatchAt(r.utf16Buf[:r.externalEnd], termAt)
		out.AppendUnits(r.utf16Buf[termAt : termAt+termLen])
		r.ptr = termAt + termLen
		r.lineno++
		return true, nil
	}
}
