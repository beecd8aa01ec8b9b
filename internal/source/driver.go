// Package source implements the reader pipeline's source drivers: the
// uniform byte-acquisition contract over files, stdin, in-memory strings,
// and compressed streams (gzip, bzip2, lzma/xz).
package source

import "io"

// Driver is the uniform byte-level contract every source implementation
// satisfies. ReadBytes behaves like io.Reader.Read: it returns n > 0
// bytes read and a nil error, or n == 0 and io.EOF at end of stream.
type Driver interface {
	// Name reports the source's label, used in diagnostics.
	Name() string
	// Seekable reports whether RewindTo is meaningful for this driver.
	// Stdin and bare compressed streams are not seekable; encoding
	// auto-detection on an unseekable source must work from whatever is
	// already staged in the byte buffer.
	Seekable() bool
	// ReadBytes reads up to len(dst) bytes into dst.
	ReadBytes(dst []byte) (n int, err error)
	// RewindTo seeks to an absolute byte offset. Only meaningful when
	// Seekable reports true; called with signatureLength after BOM
	// detection so a subsequent full pass starts just past the BOM.
	RewindTo(offset int64) error
	// Close releases any resources (file handles, mappings, decompressor
	// state) the driver holds.
	Close() error
}

// Internal marks a driver as usable only programmatically (not nameable
// by users on the command line) — the in-memory string driver is the
// only one that implements it.
type Internal interface {
	internalDriver()
}

var _ io.Closer = Driver(nil)
