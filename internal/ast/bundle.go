package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"svlower/internal/source"
)

// Format is the encoding of a bundle on disk.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// FormatFromPath picks the format by file extension: .mp and .msgpack are
// msgpack, everything else JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return FormatMsgpack
	}
	return FormatJSON
}

// BundleFile is one source file the spans of a bundle point into.
type BundleFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Bundle is the parser output handed to the lowering driver. File IDs in
// spans are indices into Files.
type Bundle struct {
	Files []BundleFile `json:"files"`
	Units []*Root      `json:"units"`
}

var errEmptyBundle = errors.New("bundle has no units")

// DecodeBundle reads a bundle and checks that every unit span refers to a
// listed file and that no node lacks a payload its kind requires.
func DecodeBundle(r io.Reader, format Format) (*Bundle, error) {
	var b Bundle
	switch format {
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("msgpack: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// EncodeBundle writes b in the given format.
func EncodeBundle(w io.Writer, b *Bundle, format Format) error {
	if format == FormatMsgpack {
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.UseCompactInts(true)
		return enc.Encode(b)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// EncodeUnit returns the canonical msgpack form of one unit; equal trees
// give equal bytes.
func EncodeUnit(u *Root) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(u); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Bundle) validate() error {
	if len(b.Units) == 0 {
		return errEmptyBundle
	}
	for i, u := range b.Units {
		if u == nil {
			return fmt.Errorf("unit %d is null", i)
		}
		if int(u.Span.File) >= len(b.Files) {
			return fmt.Errorf("unit %d refers to file %d, bundle has %d files", i, u.Span.File, len(b.Files))
		}
		if err := u.Check(); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}
	return nil
}

// Register adds the bundle files to fs as virtual files. fs must be empty so
// that FileSet IDs match the indices used in spans.
func (b *Bundle) Register(fs *source.FileSet) error {
	if fs.Len() != 0 {
		return fmt.Errorf("file set already holds %d files", fs.Len())
	}
	for _, f := range b.Files {
		fs.AddVirtual(f.Path, []byte(f.Content))
	}
	return nil
}

// UnitName is a short label for unit i: the path of its file and the index.
func (b *Bundle) UnitName(i int) string {
	u := b.Units[i]
	if int(u.Span.File) < len(b.Files) {
		return fmt.Sprintf("%s#%d", b.Files[u.Span.File].Path, i)
	}
	return fmt.Sprintf("unit#%d", i)
}
