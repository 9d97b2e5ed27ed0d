package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Writer writes encoded artifacts into an output directory.
type Writer struct {
	dir      string
	pretty   bool
	compress bool
}

// NewWriter creates a Writer targeting dir. When pretty is set, artifacts
// are indented; when compress is set, each artifact is written gzipped with
// a .gz suffix.
func NewWriter(dir string, pretty, compress bool) *Writer {
	return &Writer{dir: dir, pretty: pretty, compress: compress}
}

// Write encodes v deterministically and writes it as name inside the output
// directory, creating the directory if needed. It returns the number of
// bytes written.
func (w *Writer) Write(name string, v interface{}) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.pretty {
		data, err = DeterministicEncodeIndented(v, "  ")
	} else {
		data, err = DeterministicEncode(v)
	}
	if err != nil {
		return 0, fmt.Errorf("unable to encode %s: %w", name, err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return 0, fmt.Errorf("unable to create output directory: %w", err)
	}

	if w.compress {
		return len(data), w.writeGzip(name+".gz", data)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("unable to write %s: %w", name, err)
	}
	return len(data), nil
}

func (w *Writer) writeGzip(name string, data []byte) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", name, err)
	}

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		f.Close()
		return fmt.Errorf("unable to compress %s: %w", name, err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("unable to finish %s: %w", name, err)
	}
	return f.Close()
}
