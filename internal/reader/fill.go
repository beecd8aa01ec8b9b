package reader

import (
	"io"
	"unicode/utf16"

	"github.com/sourcegraph/utext/internal/errs"
)

// fillBuffer runs one compact/read/decode/surrogate-safety cycle,
// staging more decoded UTF-16 code units into utf16Buf[internalEnd:].
// It returns the number of new code units made available, which is 0 at
// true end-of-input.
func (r *Reader) fillBuffer() (int, error) {
	// 1. Compact: slide unread bytes and unread UTF-16 code units to the
	// front so there's room to grow at the back.
	if r.bytePtr > 0 {
		n := copy(r.byteBuf, r.byteBuf[r.bytePtr:r.byteEnd])
		r.byteEnd = n
		r.bytePtr = 0
	}
	if r.ptr > 0 {
		n := copy(r.utf16Buf, r.utf16Buf[r.ptr:r.internalEnd])
		r.internalEnd = n
		r.externalEnd = n
		r.ptr = 0
	}

	before := r.internalEnd

	// 2. Read: top up the byte buffer from the driver.
	if !r.driverEOF && r.byteEnd < len(r.byteBuf) {
		n, err := r.driver.ReadBytes(r.byteBuf[r.byteEnd:])
		r.byteEnd += n
		if err == io.EOF {
			r.driverEOF = true
		} else if err != nil {
			return 0, errs.Wrap(errs.Fatal, err, "reader: mid-stream read of "+r.driver.Name())
		}
	}

	// 3. Decode: feed the staged bytes through the converter, capped to
	// the room actually available in utf16Buf. No encoding this reader
	// supports produces more than one UTF-16 code unit per source byte,
	// so capping the input by room bounds the output by room too —
	// consumed therefore never outruns what was actually decoded and
	// kept.
	if r.bytePtr < r.byteEnd || r.driverEOF {
		room := len(r.utf16Buf) - r.internalEnd
		src := r.byteBuf[r.bytePtr:r.byteEnd]
		truncated := len(src) > room
		if truncated {
			src = src[:room]
		}
		atEOF := r.driverEOF && !truncated
		units, consumed, err := r.conv.ToUnicode(src, atEOF)
		if err != nil {
			return 0, err
		}
		r.bytePtr += consumed
		if len(units) > room {
			units = units[:room]
		}
		copy(r.utf16Buf[r.internalEnd:], units)
		r.internalEnd += len(units)
	}

	// 4. Surrogate safety: never let a consumer observe a dangling lead
	// surrogate at the tail of what's been decoded so far.
	r.externalEnd = r.internalEnd
	if r.internalEnd > 0 {
		last := r.utf16Buf[r.internalEnd-1]
		if utf16.IsSurrogate(rune(last)) && last >= 0xD800 && last <= 0xDBFF {
			r.externalEnd--
		}
	}

	return r.internalEnd - before, nil
}
