// Package reader implements the transcoding reader: the central
// algorithm that turns a source.Driver's byte stream into UTF-16 lines,
// handling encoding detection, incremental decode with surrogate safety,
// line segmentation, and binary classification.
package reader

import (
	"io"

	"github.com/sourcegraph/utext/internal/errs"
	"github.com/sourcegraph/utext/internal/source"
	"github.com/sourcegraph/utext/internal/unicodesvc"
	"github.com/sourcegraph/utext/internal/ustring"
)

// BinaryPolicy selects what happens when a source is classified binary.
type BinaryPolicy int

const (
	// PolicySkip treats a binary source as unopenable (grep's default).
	PolicySkip BinaryPolicy = iota
	// PolicyText proceeds with normal line output, dumped through
	// ustring.Buffer.Dump so non-printables become visible (cat's
	// default).
	PolicyText
	// PolicyBinary proceeds, but callers are expected to report a single
	// "binary file matches" notice instead of per-line matches.
	PolicyBinary
)

// detectWindow is the byte prefix length both BOM sniffing and
// statistical charset detection run over.
const detectWindow = 4096

// binaryWindow is the maximum number of decoded code points the binary
// classifier scans before giving up and calling the file binary anyway
// (an unterminated scan means the file kept going, so it didn't prove
// itself text within a reasonable budget).
const binaryWindow = 1024

// byteCap is the byte-side staging buffer's fixed capacity backing the
// ptr/end/limit discipline of spec.md §3.
const byteCap = 64 * 1024

// Options configures how a Reader opens a source.
type Options struct {
	// EncodingOverride, if non-empty, is tried before BOM/statistical
	// detection (the caller's configured "inputs encoding").
	EncodingOverride string
	// FallbackEncoding is used when detection yields nothing usable and
	// no override was given.
	FallbackEncoding string
	// Binary selects the binary-file policy.
	Binary BinaryPolicy
}

// Reader is the transcoding reader state described in spec.md §3: a
// source driver, a negotiated converter, a byte-side staging buffer, and
// a UTF-16-side staging buffer with the ptr/internalEnd/externalEnd/limit
// discipline that keeps a split surrogate pair from ever reaching a
// consumer.
type Reader struct {
	driver          source.Driver
	conv            *unicodesvc.Converter
	encodingName    string
	signatureLength int

	byteBuf        []byte
	bytePtr, byteEnd int

	utf16Buf                 []uint16
	ptr, internalEnd, externalEnd int

	lineno int
	isBin  bool
	policy BinaryPolicy

	driverEOF bool
}

// Open negotiates an encoding for driver (BOM sniff, then statistical
// detection, then override/fallback), runs binary classification if the
// driver is seekable, and returns a ready-to-read Reader. A failure to
// read the detection window or to open a converter, and a binary source
// under PolicySkip, are warning-typed errors: the caller is expected to
// move on to its next input rather than aborting the whole run. A read
// failure during binary classification and a failed rewind are
// fatal-typed.
func Open(driver source.Driver, opts Options) (*Reader, error) {
	r := &Reader{
		driver:  driver,
		byteBuf: make([]byte, byteCap),
		utf16Buf: make([]uint16, byteCap), // upper bound: at most one unit per byte
		policy:  opts.Binary,
	}

	for r.byteEnd < detectWindow {
		n, err := driver.ReadBytes(r.byteBuf[r.byteEnd:detectWindow])
		r.byteEnd += n
		if err == io.EOF {
			r.driverEOF = true
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.Warning, err, "reader: open "+driver.Name())
		}
		if n == 0 {
			break
		}
	}

	fallback := opts.FallbackEncoding
	if fallback == "" {
		fallback = "UTF-8"
	}
	if opts.EncodingOverride != "" {
		r.encodingName = opts.EncodingOverride
	} else {
		name, sigLen := unicodesvc.ResolveEncoding(r.byteBuf[:r.byteEnd], fallback)
		r.encodingName = name
		r.signatureLength = sigLen
	}

	conv, err := unicodesvc.OpenConverter(r.encodingName)
	if err != nil {
		return nil, errs.Wrap(errs.Warning, err, "reader: open converter for "+driver.Name())
	}
	r.conv = conv
	r.bytePtr = r.signatureLength

	if driver.Seekable() && opts.Binary != PolicyText {
		bin, err := r.classifyBinary()
		if err != nil {
			return nil, err
		}
		r.isBin = bin
		if bin && opts.Binary == PolicySkip {
			return nil, errs.New(errs.Warning, "reader: "+driver.Name()+" looks binary, skipping")
		}
		if err := driver.RewindTo(int64(r.signatureLength)); err != nil {
			return nil, errs.Wrap(errs.Fatal, err, "reader: rewind "+driver.Name())
		}
		r.bytePtr, r.byteEnd = 0, 0
		r.ptr, r.internalEnd, r.externalEnd = 0, 0, 0
		r.driverEOF = false
		r.conv.Reset()
	}

	return r, nil
}

// Name returns the underlying driver's label.
func (r *Reader) Name() string { return r.driver.Name() }

// Encoding returns the negotiated encoding name.
func (r *Reader) Encoding() string { return r.encodingName }

// Lineno returns the current 0-based line count.
func (r *Reader) Lineno() int { return r.lineno }

// IsBinary reports the outcome of the pre-read binary classification.
func (r *Reader) IsBinary() bool { return r.isBin }

// EOF reports whether the reader has nothing left to deliver: the
// underlying driver is exhausted and the staged UTF-16 window is empty.
func (r *Reader) EOF() bool {
	return r.driverEOF && r.ptr >= r.externalEnd && r.bytePtr >= r.byteEnd
}

// Close releases the underlying driver.
func (r *Reader) Close() error {
	return r.driver.Close()
}
