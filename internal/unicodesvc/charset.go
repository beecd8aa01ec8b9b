package unicodesvc

import "github.com/saintfish/chardet"

// MinConfidence is the statistical-detection acceptance floor from
// spec.md §4.2: below this integer percentage, detection falls back to
// the configured (or system default) encoding rather than trusting the
// guess.
const MinConfidence = 39

var detector = chardet.NewTextDetector()

// DetectCharset runs statistical charset detection over data, returning
// the best candidate's IANA-ish name and its confidence as an integer
// percentage. ok is false when detection fails outright (e.g. empty
// input) — a low-but-present confidence is still returned as ok=true so
// the caller can apply the MinConfidence floor itself.
func DetectCharset(data []byte) (name string, confidence int, ok bool) {
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "", 0, false
	}
	return result.Charset, result.Confidence, true
}

// ResolveEncoding implements the full two-stage algorithm of spec.md
// §4.2: BOM sniff first, then statistical detection gated by
// MinConfidence, falling back to fallback (the configured inputs
// encoding or system default) when neither succeeds.
//
// signatureLength is the byte length of a detected BOM, 0 when none was
// found; callers use it to know how many bytes to skip on rewind.
func ResolveEncoding(data []byte, fallback string) (name string, signatureLength int) {
	if n, length, ok := DetectBOM(data); ok {
		return n, length
	}
	if n, confidence, ok := DetectCharset(data); ok && confidence >= MinConfidence {
		return n, 0
	}
	return fallback, 0
}
