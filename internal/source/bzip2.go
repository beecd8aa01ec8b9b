package source

import (
	"compress/bzip2"
	"io"
	"os"

	"github.com/sourcegraph/utext/internal/errs"
)

// Bzip2Driver streams a bzip2-compressed file through the standard
// library's reader. There is no corresponding bzip2 writer anywhere in
// this pipeline (it is read-only), so the nabbar-golib pattern's
// dependency on a third-party bzip2 writer (github.com/dsnet/compress)
// has nothing to attach to and is not carried over; compress/bzip2's
// reader is the entire surface this driver needs.
type Bzip2Driver struct {
	name string
	file *os.File
	zr   io.Reader
}

// OpenBzip2 opens path and wraps it in a streaming bzip2 reader.
func OpenBzip2(path string) (*Bzip2Driver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.Fatal, err, "source: open "+path)
	}
	return &Bzip2Driver{name: path, file: f, zr: bzip2.NewReader(f)}, nil
}

func (d *Bzip2Driver) Name() string   { return d.name }
func (d *Bzip2Driver) Seekable() bool { return false }

func (d *Bzip2Driver) ReadBytes(dst []byte) (int, error) {
	return d.zr.Read(dst)
}

func (d *Bzip2Driver) RewindTo(offset int64) error {
	panic("source: bzip2 driver is not seekable")
}

func (d *Bzip2Driver) Close() error {
	return d.file.Close()
}
