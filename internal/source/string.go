package source

import "io"

// StringDriver is an in-memory, zero-copy byte source. It is internal
// only: nameable by programmatic callers (tests, or a utility feeding a
// literal argument through the same pipeline as a file), never by a
// user-supplied source name.
type StringDriver struct {
	name string
	data []byte
	pos  int
}

// OpenString wraps data as a driver without copying it.
func OpenString(name string, data []byte) *StringDriver {
	return &StringDriver{name: name, data: data}
}

func (d *StringDriver) internalDriver() {}

func (d *StringDriver) Name() string   { return d.name }
func (d *StringDriver) Seekable() bool { return true }

func (d *StringDriver) ReadBytes(dst []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}
	n := copy(dst, d.data[d.pos:])
	d.pos += n
	return n, nil
}

func (d *StringDriver) RewindTo(offset int64) error {
	d.pos = int(offset)
	return nil
}

func (d *StringDriver) Close() error { return nil }

var (
	_ Driver   = (*StringDriver)(nil)
	_ Internal = (*StringDriver)(nil)
)
