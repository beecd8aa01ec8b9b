package source

import "sort"

// Opener constructs a driver for a named source kind — e.g. "gzip" opens
// a GzipDriver over a path. This package's init registers every built-in
// driver (mmap, gzip, pgzip, bzip2, xz, lzma), so any binary that imports
// it gets all six; Drivers() reports what is registered.
type Opener func(path string) (Driver, error)

var registry = map[string]Opener{}

// Register adds name to the process-wide driver registry, replacing any
// opener already registered under that name.
func Register(name string, open Opener) {
	registry[name] = open
}

// Drivers returns the names of every driver registered in this binary,
// sorted for deterministic CLI help/listing output.
func Drivers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open dispatches to the registered opener for name.
func Open(name, path string) (Driver, bool, error) {
	open, ok := registry[name]
	if !ok {
		return nil, false, nil
	}
	d, err := open(path)
	return d, true, err
}

func init() {
	Register("mmap", func(path string) (Driver, error) { return OpenMmap(path) })
	Register("gzip", func(path string) (Driver, error) { return OpenGzip(path, false) })
	Register("pgzip", func(path string) (Driver, error) { return OpenGzip(path, true) })
	Register("bzip2", func(path string) (Driver, error) { return OpenBzip2(path) })
	Register("xz", func(path string) (Driver, error) { return OpenLzma(path, FormatXZ) })
	Register("lzma", func(path string) (Driver, error) { return OpenLzma(path, FormatLZMA) })
}
