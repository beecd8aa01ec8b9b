package unicodesvc

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// fixedEncodings covers the four fixed-width Unicode transformation
// formats signature detection can name directly. htmlindex (the web
// charset registry golang.org/x/text ships) exposes UTF-8 and the
// single-byte/legacy-CJK encodings but not these, since HTML never
// negotiates them by label the way the BOM sniff here does.
var fixedEncodings = map[string]encoding.Encoding{
	"UTF-16BE": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"UTF-16LE": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-32BE": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"UTF-32LE": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
}
