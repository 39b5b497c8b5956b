package diagfmt

import (
	"io"

	"svlower/internal/diag"
	"svlower/internal/source"
)

// Short writes one line per diagnostic, notes included when withNotes is
// set. The format is the one golden files use.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	text := diag.FormatShortDiagnostics(bag.Items(), fs, withNotes)
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}
