// Package security keeps output files derived from capture folder names
// inside the output directory.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeFilename turns a run name into a file name. Anything other than
// ASCII letters, digits, dot or dash becomes an underscore and runs of
// underscores collapse to one.
func SanitizeFilename(s string) string {
	const maxLen = 128

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "run"
	}
	return out
}

// OutputPath joins dir, the sanitized name and ext, and rejects the result
// if it would land outside dir.
func OutputPath(dir, name, ext string) (string, error) {
	p := filepath.Join(dir, SanitizeFilename(name)+ext)

	rel, err := filepath.Rel(filepath.Clean(dir), p)
	if err != nil {
		return "", fmt.Errorf("output path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected: %s escapes %s", p, dir)
	}
	return p, nil
}
