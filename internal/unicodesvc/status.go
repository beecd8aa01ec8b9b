package unicodesvc

import (
	"errors"

	"golang.org/x/text/transform"
)

// statusSentences maps a handful of distinct failure values —
// golang.org/x/text/transform's sentinel errors plus the charset/encoding
// sentinels declared below — to a descriptive sentence. The original ICU-backed core carried a table of
// roughly 120 status codes; this one is smaller by construction, since
// the Go encoding/regex stack surfaces far fewer distinct error values.
var statusSentences = map[error]string{
	transform.ErrShortSrc: "input ended in the middle of an encoded sequence",
	transform.ErrShortDst: "output buffer too small to hold the decoded sequence",
	transform.ErrEndOfSpan: "transform stopped before reaching the end of input",
	errNoCharsetMatch:      "statistical charset detection found no plausible candidate",
	errLowConfidence:       "statistical charset detection confidence fell below the acceptance floor",
	errUnknownEncoding:     "the named encoding is not registered with this build",
}

var (
	errNoCharsetMatch  = errors.New("unicodesvc: no charset candidate")
	errLowConfidence   = errors.New("unicodesvc: charset confidence below floor")
	errUnknownEncoding = errors.New("unicodesvc: unknown encoding name")
)

// StatusSentence returns the descriptive sentence for a known error
// value, or ok=false if err isn't one of the table's recognized causes.
func StatusSentence(err error) (sentence string, ok bool) {
	for known, text := range statusSentences {
		if errors.Is(err, known) {
			return text, true
		}
	}
	return "", false
}
