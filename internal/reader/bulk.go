package reader

import "unicode/utf16"

// ReadUChars copies up to len(dst) decoded UTF-16 code units into dst,
// refilling as needed, returning the number copied (0 at end of input).
func (r *Reader) ReadUChars(dst []uint16) (int, error) {
	copied := 0
	for copied < len(dst) {
		if r.ptr >= r.externalEnd {
			n, err := r.fillBuffer()
			if err != nil {
				return copied, err
			}
			if n == 0 && r.EOF() {
				break
			}
			if r.ptr >= r.externalEnd {
				continue
			}
		}
		n := copy(dst[copied:], r.utf16Buf[r.ptr:r.externalEnd])
		r.ptr += n
		copied += n
	}
	return copied, nil
}

// ReadUChars32 decodes up to max code points (consuming surrogate pairs
// as single entries) into dst, returning the number of code points
// produced.
func (r *Reader) ReadUChars32(dst []rune, max int) (int, error) {
	if max > len(dst) {
		max = len(dst)
	}
	produced := 0
	for produced < max {
		if r.ptr >= r.externalEnd {
			n, err := r.fillBuffer()
			if err != nil {
				return produced, err
			}
			if n == 0 && r.EOF() {
				break
			}
			if r.ptr >= r.externalEnd {
				continue
			}
		}
		c := r.utf16Buf[r.ptr]
		if utf16.IsSurrogate(rune(c)) && r.ptr+1 < r.externalEnd {
			pair := utf16.DecodeRune(rune(c), rune(r.utf16Buf[r.ptr+1]))
			dst[produced] = pair
			r.ptr += 2
		} else {
			dst[produced] = rune(c)
			r.ptr++
		}
		produced++
	}
	return produced, nil
}
