package naming

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultCounterWidth is the zero-padding used by a bare {counter}.
const DefaultCounterWidth = 3

var (
	placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)
	counterRe     = regexp.MustCompile(`(?i)^counter(?::(\d+))?$`)
	canonicalRe   = regexp.MustCompile(`\{counter:(\d+)\}`)
)

// Expand substitutes metadata placeholders in pattern and sanitises the result
// as a single file name. Counter placeholders come out in canonical form.
func Expand(pattern string, metadata map[string]string) string {
	return sanitizeKeepingCounters(substitute(pattern, metadata), SanitizeFilename)
}

// ExpandPath is Expand for templates that may describe nested folders.
func ExpandPath(pattern string, metadata map[string]string) string {
	return sanitizeKeepingCounters(substitute(pattern, metadata), SanitizePath)
}

// HasCounter reports whether name still holds a canonical counter token.
func HasCounter(name string) bool {
	return canonicalRe.MatchString(name)
}

// ApplyCounter replaces every canonical counter token in name with n, padded
// to the token's width.
func ApplyCounter(name string, n int) string {
	return canonicalRe.ReplaceAllStringFunc(name, func(tok string) string {
		width, _ := strconv.Atoi(canonicalRe.FindStringSubmatch(tok)[1])
		return fmt.Sprintf("%0*d", width, n)
	})
}

// substitute makes one left-to-right pass, so values that happen to contain
// braces are never treated as placeholders themselves.
func substitute(pattern string, metadata map[string]string) string {
	lookup := foldKeys(metadata)
	return placeholderRe.ReplaceAllStringFunc(pattern, func(tok string) string {
		key := tok[1 : len(tok)-1]
		if m := counterRe.FindStringSubmatch(key); m != nil {
			width := DefaultCounterWidth
			if m[1] != "" {
				width, _ = strconv.Atoi(m[1])
			}
			return fmt.Sprintf("{counter:%d}", width)
		}
		if v, ok := lookup[strings.ToLower(key)]; ok {
			return v
		}
		return tok
	})
}

// foldKeys lower-cases metadata keys. Keys are visited in sorted order so that
// two keys differing only in case resolve the same way on every call.
func foldKeys(metadata map[string]string) map[string]string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	folded := make(map[string]string, len(keys))
	for _, k := range keys {
		lk := strings.ToLower(k)
		if _, seen := folded[lk]; !seen {
			folded[lk] = metadata[k]
		}
	}
	return folded
}

// counterMark stands in for the ':' of a counter token while the text is
// sanitised, since ':' is in the invalid set.
const counterMark = "\uE000"

func sanitizeKeepingCounters(s string, sanitize func(string) string) string {
	if !HasCounter(s) {
		return sanitize(s)
	}
	masked := canonicalRe.ReplaceAllString(s, "{counter"+counterMark+"$1}")
	return strings.ReplaceAll(sanitize(masked), "{counter"+counterMark, "{counter:")
}
