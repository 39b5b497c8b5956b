package diagfmt

import (
	"path/filepath"

	"svlower/internal/source"
)

// autoPathLimit is the length above which PathModeAuto falls back to the
// basename of an absolute path.
const autoPathLimit = 40

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	if filepath.IsAbs(f.Path) && len(f.Path) > autoPathLimit {
		return f.FormatPath("basename", "")
	}
	return f.Path
}
