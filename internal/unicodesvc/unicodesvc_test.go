package unicodesvc

import (
	"testing"

	"golang.org/x/text/transform"
)

func TestDetectBOM(t *testing.T) {
	cases := []struct {
		name       string
		data       []byte
		wantName   string
		wantLength int
		wantOK     bool
	}{
		{"utf8", []byte{0xEF, 0xBB, 0xBF, 'a'}, "UTF-8", 3, true},
		{"utf16be", []byte{0xFE, 0xFF, 0x00, 'a'}, "UTF-16BE", 2, true},
		{"utf16le", []byte{0xFF, 0xFE, 'a', 0x00}, "UTF-16LE", 2, true},
		{"utf32be", []byte{0x00, 0x00, 0xFE, 0xFF, 'a'}, "UTF-32BE", 4, true},
		{"utf32le", []byte{0xFF, 0xFE, 0x00, 0x00, 'a'}, "UTF-32LE", 4, true},
		{"none", []byte("plain text"), "", 0, false},
		{"empty", nil, "", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			name, length, ok := DetectBOM(c.data)
			if ok != c.wantOK || name != c.wantName || length != c.wantLength {
				t.Errorf("DetectBOM(%v) = (%q, %d, %v), want (%q, %d, %v)",
					c.data, name, length, ok, c.wantName, c.wantLength, c.wantOK)
			}
		})
	}
}

func TestUTF32LEDoesNotMisfireAsUTF16LE(t *testing.T) {
	// FF FE 00 00 must resolve to the longer UTF-32LE match, not UTF-16LE.
	name, length, ok := DetectBOM([]byte{0xFF, 0xFE, 0x00, 0x00})
	if !ok || name != "UTF-32LE" || length != 4 {
		t.Errorf("got (%q, %d, %v), want (UTF-32LE, 4, true)", name, length, ok)
	}
}

func TestResolveEncodingFallsBackWithoutBOM(t *testing.T) {
	name, length := ResolveEncoding([]byte("plain ascii text with no markers"), "ISO-8859-1")
	if length != 0 {
		t.Errorf("signatureLength = %d, want 0 for non-BOM input", length)
	}
	if name == "" {
		t.Error("expected a non-empty resolved encoding name")
	}
}

func TestResolveEncodingPrefersBOM(t *testing.T) {
	name, length := ResolveEncoding([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "ISO-8859-1")
	if name != "UTF-8" || length != 3 {
		t.Errorf("got (%q, %d), want (UTF-8, 3)", name, length)
	}
}

func TestIsWordChar(t *testing.T) {
	cases := map[rune]bool{
		'a': true, 'Z': true, '5': true, '_': true,
		' ': false, '.': false, '-': false,
	}
	for r, want := range cases {
		if got := IsWordChar(r); got != want {
			t.Errorf("IsWordChar(%q) = %v, want %v", r, got, want)
		}
	}
}

func TestWordBoundaryBefore(t *testing.T) {
	if !WordBoundaryBefore('a', ' ') {
		t.Error("expected a boundary between a word char and a space")
	}
	if WordBoundaryBefore('a', 'b') {
		t.Error("expected no boundary between two word chars")
	}
}

func TestStatusSentenceKnownAndUnknown(t *testing.T) {
	if _, ok := StatusSentence(transform.ErrShortSrc); !ok {
		t.Error("expected transform.ErrShortSrc to have a sentence")
	}
	if _, ok := StatusSentence(errUnexpectedForTest); ok {
		t.Error("expected an unrelated error to have no sentence")
	}
}

var errUnexpectedForTest = &testSentinel{}

type testSentinel struct{}

func (*testSentinel) Error() string { return "unrelated sentinel" }

func TestOpenConverterKnownEncodings(t *testing.T) {
	for _, name := range []string{"UTF-8", "UTF-16BE", "UTF-16LE", "UTF-32BE", "UTF-32LE", "ISO-8859-1"} {
		if _, err := OpenConverter(name); err != nil {
			t.Errorf("OpenConverter(%q) failed: %v", name, err)
		}
	}
}

func TestOpenConverterUnknownEncoding(t *testing.T) {
	if _, err := OpenConverter("not-a-real-encoding"); err == nil {
		t.Error("expected an error for an unknown encoding name")
	}
}

func TestConverterToUnicodeASCII(t *testing.T) {
	c, err := OpenConverter("UTF-8")
	if err != nil {
		t.Fatal(err)
	}
	units, consumed, err := c.ToUnicode([]byte("hi"), true)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 2 || len(units) != 2 {
		t.Errorf("got consumed=%d units=%v, want consumed=2 units of length 2", consumed, units)
	}
}
