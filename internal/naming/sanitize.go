package naming

import (
	"strings"
)

// invalidChars is the Windows invalid file name set. It is applied on every OS
// so renamed trees stay portable between machines.
const invalidChars = `<>:"/\|?*`

func isInvalid(r rune) bool {
	return r < 0x20 || strings.ContainsRune(invalidChars, r)
}

// SanitizeFilename removes characters that are not allowed in a single path
// component (including separators) and trims surrounding whitespace.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(stripInvalid(name, false))
}

// SanitizePath is SanitizeFilename for relative paths: '/' and '\' are kept as
// separators (normalised to '/'), every segment is trimmed, and empty, "." and
// ".." segments are dropped so the result never leaves the base folder.
func SanitizePath(path string) string {
	cleaned := stripInvalid(path, true)
	parts := strings.Split(cleaned, "/")
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "/")
}

func stripInvalid(s string, keepSeparators bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keepSeparators && (r == '/' || r == '\\') {
			b.WriteRune('/')
			continue
		}
		if isInvalid(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
