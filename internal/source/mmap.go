package source

import (
	"io"
	"os"

	"github.com/sourcegraph/utext/internal/errs"
	mmap "github.com/xujiajun/mmap-go"
)

// MmapDriver is the default file driver: the whole file is mapped once
// and ReadBytes slides a cursor through the mapping, avoiding a copy into
// a kernel read buffer on every call.
type MmapDriver struct {
	name   string
	file   *os.File
	region mmap.MMap
	pos    int64
}

// OpenMmap maps path for reading.
func OpenMmap(path string) (*MmapDriver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.Fatal, err, "source: open "+path)
	}
	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errs.Wrap(errs.Fatal, err, "source: mmap "+path)
	}
	return &MmapDriver{name: path, file: f, region: region}, nil
}

func (d *MmapDriver) Name() string    { return d.name }
func (d *MmapDriver) Seekable() bool  { return true }

func (d *MmapDriver) ReadBytes(dst []byte) (int, error) {
	if d.pos >= int64(len(d.region)) {
		return 0, io.EOF
	}
	n := copy(dst, d.region[d.pos:])
	d.pos += int64(n)
	return n, nil
}

func (d *MmapDriver) RewindTo(offset int64) error {
	d.pos = offset
	return nil
}

func (d *MmapDriver) Close() error {
	err := d.region.Unmap()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}
