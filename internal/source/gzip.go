package source

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
	"github.com/sourcegraph/utext/internal/errs"
)

// GzipDriver wraps a gzip-compressed file, streaming decompressed bytes
// through ReadBytes rather than buffering the whole output. Adapted from
// nabbar-golib's archive/gzip helper, which decompressed to a temp file
// in one shot — this driver instead feeds the decompressor incrementally
// so arbitrarily large archives don't need disk staging.
type GzipDriver struct {
	name string
	file *os.File
	zr   io.Reader
	c    io.Closer
}

// OpenGzip opens path and wraps it in a streaming gzip reader. When
// parallel is true the multistream-aware pgzip reader is used instead of
// klauspost/compress/gzip, trading a little latency for throughput on
// multi-block archives.
func OpenGzip(path string, parallel bool) (*GzipDriver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.Fatal, err, "source: open "+path)
	}
	var zr io.Reader
	var closer io.Closer
	if parallel {
		r, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errs.Wrap(errs.Fatal, err, "source: pgzip header "+path)
		}
		zr, closer = r, r
	} else {
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errs.Wrap(errs.Fatal, err, "source: gzip header "+path)
		}
		zr, closer = r, r
	}
	return &GzipDriver{name: path, file: f, zr: zr, c: closer}, nil
}

func (d *GzipDriver) Name() string   { return d.name }
func (d *GzipDriver) Seekable() bool { return false }

func (d *GzipDriver) ReadBytes(dst []byte) (int, error) {
	return d.zr.Read(dst)
}

func (d *GzipDriver) RewindTo(offset int64) error {
	panic("source: gzip driver is not seekable")
}

func (d *GzipDriver) Close() error {
	err := d.c.Close()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}
