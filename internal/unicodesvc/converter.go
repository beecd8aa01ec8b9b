package unicodesvc

import (
	"unicode/utf16"

	"github.com/sourcegraph/utext/internal/errs"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Converter is the reader's "external converter" contract: open once per
// detected/negotiated encoding, then feed it successive byte windows and
// get back decoded UTF-16 code units, tracking how many input bytes were
// actually consumed (a transform.Decoder can stop mid-rune at the end of
// a short window).
type Converter struct {
	name    string
	enc     encoding.Encoding
	decoder *encoding.Decoder
}

// OpenConverter resolves name (an IANA/WHATWG encoding label, e.g.
// "UTF-8", "ISO-8859-1", "Shift_JIS") to a converter. UTF-16BE/LE and
// UTF-32BE/LE are handled directly since golang.org/x/text/encoding/
// htmlindex does not register them (they are exposed only via
// golang.org/x/text/encoding/unicode in the caller's preferred form, so
// the four variants are special-cased here to keep one lookup path).
func OpenConverter(name string) (*Converter, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, errs.Wrap(errs.Fatal, err, "unicodesvc: unknown encoding "+name)
	}
	return &Converter{name: name, enc: enc, decoder: enc.NewDecoder()}, nil
}

// Name returns the encoding name the converter was opened with.
func (c *Converter) Name() string { return c.name }

// ToUnicode decodes as much of src as forms complete runes, returning the
// decoded UTF-16 code units and the number of bytes of src consumed.
// atEOF must be true on the final call for a given byte stream so a
// trailing incomplete sequence is reported as an error rather than
// silently dropped.
func (c *Converter) ToUnicode(src []byte, atEOF bool) (units []uint16, consumed int, err error) {
	dst := make([]byte, 4*len(src)+4)
	nDst, nSrc, tErr := c.decoder.Transform(dst, src, atEOF)
	if tErr != nil && tErr != transform.ErrShortSrc {
		return nil, nSrc, errs.Wrap(errs.Warning, tErr, "unicodesvc: decode failure")
	}
	runes := []rune(string(dst[:nDst]))
	return utf16.Encode(runes), nSrc, nil
}

// Reset clears any partial-sequence state the converter is carrying
// between calls (used when a rewind discards pending input).
func (c *Converter) Reset() { c.decoder.Reset() }

func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, ok := fixedEncodings[name]; ok {
		return enc, nil
	}
	return htmlindex.Get(name)
}
