package driver

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"svlower/internal/ast"
	"svlower/internal/source"
)

// LoadBundle reads a bundle from path (JSON or msgpack by extension) and
// registers its files in a new FileSet rooted at the bundle directory.
// Open failures come back as *fs.PathError, anything else is a decode error.
func LoadBundle(path string) (*ast.Bundle, *source.FileSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	b, err := ast.DecodeBundle(bufio.NewReader(f), ast.FormatFromPath(path))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to decode: %w", path, err)
	}
	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		base = filepath.Dir(path)
	}
	fs := source.NewFileSetWithBase(base)
	if err := b.Register(fs); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, fs, nil
}
