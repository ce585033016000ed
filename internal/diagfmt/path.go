package diagfmt

import (
	"path/filepath"
	"strings"

	"github.com/rknit/whiskc/internal/source"
)

const autoPathLimit = 40

func formatPath(f *source.File, mode PathMode, base string) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil && f.Flags&source.FileVirtual == 0 {
			return abs
		}
		return f.Path
	case PathModeRelative:
		if base == "" {
			return f.Path
		}
		if rel, err := filepath.Rel(base, f.Path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) > autoPathLimit {
			return filepath.Base(f.Path)
		}
		return f.Path
	}
}
