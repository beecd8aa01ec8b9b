package source

import (
	"bytes"
	"io"
	"testing"
)

func TestStringDriverReadAndRewind(t *testing.T) {
	d := OpenString("mem", []byte("hello world"))
	buf := make([]byte, 5)
	n, err := d.ReadBytes(buf)
	if err != nil || n != 5 || string(buf) != "hello" {
		t.Fatalf("ReadBytes = (%d, %v, %q), want (5, nil, hello)", n, err, buf)
	}
	if err := d.RewindTo(0); err != nil {
		t.Fatal(err)
	}
	n, err = d.ReadBytes(buf)
	if err != nil || string(buf[:n]) != "hello" {
		t.Fatalf("ReadBytes after rewind = (%q, %v), want hello", buf[:n], err)
	}
	if !d.Seekable() {
		t.Error("string driver should be seekable")
	}
}

func TestStringDriverEOF(t *testing.T) {
	d := OpenString("mem", []byte("ab"))
	buf := make([]byte, 16)
	n, err := d.ReadBytes(buf)
	if err != nil || n != 2 {
		t.Fatalf("first read = (%d, %v)", n, err)
	}
	_, err = d.ReadBytes(buf)
	if err != io.EOF {
		t.Fatalf("expected io.EOF at end of string source, got %v", err)
	}
}

func TestStdioDriverNotSeekable(t *testing.T) {
	d := OpenStdio("stdin", bytes.NewReader([]byte("x")))
	if d.Seekable() {
		t.Error("stdio driver must not report seekable")
	}
}

func TestRegistryHasBuiltinDrivers(t *testing.T) {
	names := Drivers()
	want := map[string]bool{"mmap": false, "gzip": false, "bzip2": false, "xz": false, "lzma": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("driver %q not registered", n)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, ok, err := Open("not-a-driver", "irrelevant")
	if ok || err != nil {
		t.Errorf("Open(unknown) = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}
