// Package unicodesvc implements the reader's "Unicode services provider"
// contract: signature (BOM) detection, statistical charset detection,
// encoding-name-to-converter resolution, and the simplified word-break
// classifier the literal match engine uses for word-bounded search.
package unicodesvc

// signature pairs a byte prefix with the encoding name it identifies.
// Order matters: longer, more specific prefixes (UTF-32) must be checked
// before shorter prefixes they contain (UTF-16LE's FF FE is a strict
// prefix of UTF-32LE's FF FE 00 00).
type signature struct {
	name  string
	bytes []byte
}

var signatures = []signature{
	{"UTF-32BE", []byte{0x00, 0x00, 0xFE, 0xFF}},
	{"UTF-32LE", []byte{0xFF, 0xFE, 0x00, 0x00}},
	{"UTF-EBCDIC", []byte{0xDD, 0x73, 0x66, 0x73}},
	{"UTF-16BE", []byte{0xFE, 0xFF}},
	{"UTF-16LE", []byte{0xFF, 0xFE}},
	{"UTF-8", []byte{0xEF, 0xBB, 0xBF}},
	{"SCSU", []byte{0x0E, 0xFE, 0xFF}},
	{"UTF-7", []byte{0x2B, 0x2F, 0x76}},
}

// DetectBOM inspects the start of data for one of the eight recognized
// Unicode signatures, returning the encoding name and the signature's
// byte length. ok is false if no signature matches.
func DetectBOM(data []byte) (name string, length int, ok bool) {
	for _, sig := range signatures {
		if len(data) < len(sig.bytes) {
			continue
		}
		if hasPrefix(data, sig.bytes) {
			return sig.name, len(sig.bytes), true
		}
	}
	return "", 0, false
}

func hasPrefix(data, prefix []byte) bool {
	for i, b := range prefix {
		if data[i] != b {
			return false
		}
	}
	return true
}
