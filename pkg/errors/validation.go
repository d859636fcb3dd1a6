package errors

import (
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// Formats lists the artifact formats the pipeline can produce.
var Formats = []string{"svg", "pdf", "png", "json"}

// ValidateFormat checks an output format name against [Formats].
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(Formats, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateScale checks a raster scale factor.
// The upper bound keeps a single request from allocating an enormous pixmap.
func ValidateScale(scale float64) error {
	const maxScale = 8
	if scale <= 0 {
		return New(ErrCodeInvalidInput, "scale must be positive, got %v", scale)
	}
	if scale > maxScale {
		return New(ErrCodeInvalidInput, "scale too large (max %d), got %v", maxScale, scale)
	}
	return nil
}

// ValidateOutputPath validates a path the CLI is about to write an artifact to.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}
	return nil
}
