package source

import (
	"io"
	"os"

	"github.com/sourcegraph/utext/internal/errs"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// LzmaFormat distinguishes the two container formats ulikunitz/xz
// supports — the legacy standalone .lzma stream and the newer .xz
// container.
type LzmaFormat int

const (
	FormatXZ LzmaFormat = iota
	FormatLZMA
)

// LzmaDriver streams an xz- or lzma-compressed file.
type LzmaDriver struct {
	name string
	file *os.File
	zr   io.Reader
}

// OpenLzma opens path as the given compression format.
func OpenLzma(path string, format LzmaFormat) (*LzmaDriver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.Fatal, err, "source: open "+path)
	}
	var zr io.Reader
	switch format {
	case FormatXZ:
		zr, err = xz.NewReader(f)
	case FormatLZMA:
		zr, err = lzma.NewReader(f)
	}
	if err != nil {
		f.Close()
		return nil, errs.Wrap(errs.Fatal, err, "source: compressed header "+path)
	}
	return &LzmaDriver{name: path, file: f, zr: zr}, nil
}

func (d *LzmaDriver) Name() string   { return d.name }
func (d *LzmaDriver) Seekable() bool { return false }

func (d *LzmaDriver) ReadBytes(dst []byte) (int, error) {
	return d.zr.Read(dst)
}

func (d *LzmaDriver) RewindTo(offset int64) error {
	panic("source: lzma/xz driver is not seekable")
}

func (d *LzmaDriver) Close() error {
	return d.file.Close()
}
