package source

import (
	"bufio"
	"io"
)

// StdioDriver wraps a buffered, non-seekable stream — the canonical
// shape for reading from stdin or any pipe.
type StdioDriver struct {
	name string
	r    *bufio.Reader
	c    io.Closer
}

// OpenStdio wraps r (stdin or any io.Reader) as an unseekable driver. If
// r also implements io.Closer, Close forwards to it.
func OpenStdio(name string, r io.Reader) *StdioDriver {
	c, _ := r.(io.Closer)
	return &StdioDriver{name: name, r: bufio.NewReader(r), c: c}
}

func (d *StdioDriver) Name() string   { return d.name }
func (d *StdioDriver) Seekable() bool { return false }

func (d *StdioDriver) ReadBytes(dst []byte) (int, error) {
	return d.r.Read(dst)
}

func (d *StdioDriver) RewindTo(offset int64) error {
	panic("source: stdio driver is not seekable")
}

func (d *StdioDriver) Close() error {
	if d.c != nil {
		return d.c.Close()
	}
	return nil
}
