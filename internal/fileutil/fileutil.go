package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/metadata"
	"github.com/takeshy/reshape/internal/model"
)

// ErrDirectoryNotFound is returned when the scan root does not exist or is not
// a directory.
var ErrDirectoryNotFound = errors.New("directory not found")

// ScanOptions controls which files a scan returns
type ScanOptions struct {
	Extensions      []string // case-insensitive, e.g. ".jpg"; empty means all files
	ExcludePatterns []string // regexes matched against the full path
	IncludeHidden   bool     // include dot files and dot directories
}

// ScanFolder walks root recursively and returns one record per matching file,
// sorted by full path. Metadata comes from provider; a file whose metadata
// cannot be read at all is skipped, the scan itself never fails on one file.
func ScanFolder(root string, opts ScanOptions, provider metadata.Provider) ([]model.FileRecord, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}

	// Compile exclude patterns
	excludeRegexps := make([]*regexp.Regexp, 0, len(opts.ExcludePatterns))
	for _, pattern := range opts.ExcludePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		excludeRegexps = append(excludeRegexps, re)
	}

	exts := NormalizeExtensions(opts.Extensions)

	var files []model.FileRecord
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			logging.Debug("skipping unreadable entry", logging.String("path", path), logging.Err(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path != absRoot && !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && matchesAny(excludeRegexps, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || matchesAny(excludeRegexps, path) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if len(exts) > 0 && !exts[ext] {
			return nil
		}

		record, err := newRecord(absRoot, path, ext, provider)
		if err != nil {
			logging.Debug("skipping file", logging.String("path", path), logging.Err(err))
			return nil
		}
		files = append(files, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].FullPath < files[j].FullPath
	})

	logging.Debug("scan complete", logging.String("root", absRoot), logging.Int("files", len(files)))
	return files, nil
}

func newRecord(root, path, ext string, provider metadata.Provider) (model.FileRecord, error) {
	e, err := provider.Extract(path)
	if err != nil {
		return model.FileRecord{}, err
	}

	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil || rel == "." {
		rel = ""
	}

	return model.FileRecord{
		Name:         filepath.Base(path),
		FullPath:     path,
		RelativePath: rel,
		Extension:    ext,
		Size:         e.Size,
		CreatedAt:    e.CreatedAt,
		ModifiedAt:   e.ModifiedAt,
		IsSelected:   true,
		Metadata:     e.Values,
		GPS:          e.GPS,
		DateTakenUTC: e.DateTakenUTC(),
	}, nil
}

// NormalizeExtensions lower-cases extension filters and adds a missing leading
// dot. Entries may also be comma separated ("jpg,png").
func NormalizeExtensions(extensions []string) map[string]bool {
	set := make(map[string]bool)
	for _, raw := range extensions {
		for _, ext := range strings.Split(raw, ",") {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" || ext == "." {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			set[ext] = true
		}
	}
	return set
}

func matchesAny(res []*regexp.Regexp, path string) bool {
	for _, re := range res {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// FilterByPattern keeps the records whose relative path or name matches a
// regex pattern
func FilterByPattern(files []model.FileRecord, pattern string) ([]model.FileRecord, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var filtered []model.FileRecord
	for _, f := range files {
		if re.MatchString(filepath.Join(f.RelativePath, f.Name)) {
			filtered = append(filtered, f)
		}
	}
	return filtered, nil
}
