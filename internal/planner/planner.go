package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/naming"
)

// ErrEmptyPattern is returned when no rename template was supplied.
var ErrEmptyPattern = errors.New("rename pattern is required")

// Options configures a plan.
type Options struct {
	Pattern  string
	Vacation *model.VacationModeOptions

	// BaseFolder is where vacation day folders are created. When empty the
	// folders go next to each file.
	BaseFolder string

	// Exists reports whether a path is already taken on disk. Defaults to an
	// os.Lstat probe.
	Exists func(path string) bool
}

func (o Options) exists() func(string) bool {
	if o.Exists != nil {
		return o.Exists
	}
	return pathExists
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Plan builds the preview for files, which must be in scan order.
func Plan(files []model.FileRecord, opts Options) ([]model.RenamePreviewItem, error) {
	if strings.TrimSpace(opts.Pattern) == "" {
		return nil, ErrEmptyPattern
	}

	if opts.Vacation != nil && opts.Vacation.Enabled {
		if items, ok := planVacation(files, opts); ok {
			return items, nil
		}
	}
	return planStandard(files, opts), nil
}

// planStandard renames every file in place. The counter advances once per
// file whether or not the template uses it.
func planStandard(files []model.FileRecord, opts Options) []model.RenamePreviewItem {
	items := make([]model.RenamePreviewItem, 0, len(files))
	counter := 1

	for _, f := range files {
		base := naming.ApplyCounter(naming.Expand(opts.Pattern, f.Metadata), counter)
		counter++

		items = append(items, model.RenamePreviewItem{
			OriginalName: f.Name,
			NewName:      base + f.Extension,
			FullPath:     f.FullPath,
			RelativePath: f.RelativePath,
			IsSelected:   f.IsSelected,
		})
	}

	markConflicts(items, func(i int) string {
		return filepath.Join(filepath.Dir(items[i].FullPath), items[i].NewName)
	}, opts.exists())
	return items
}

// markConflicts flags every item whose new name is shared with another item
// (case-insensitively, all members of the group) or whose destination is
// already taken by a different file.
func markConflicts(items []model.RenamePreviewItem, destination func(i int) string, exists func(string) bool) {
	seen := make(map[string]int, len(items))
	for _, it := range items {
		seen[strings.ToLower(it.NewName)]++
	}

	for i := range items {
		it := &items[i]
		if seen[strings.ToLower(it.NewName)] > 1 {
			it.HasConflict = true
			continue
		}
		if strings.EqualFold(it.NewName, it.OriginalName) {
			continue
		}
		dest := destination(i)
		if strings.EqualFold(filepath.Clean(dest), filepath.Clean(it.FullPath)) {
			continue
		}
		if exists(dest) {
			it.HasConflict = true
		}
	}
}

// Summary counts preview items by outcome.
type Summary struct {
	Total      int `json:"total"`
	Renames    int `json:"renames"`
	Conflicts  int `json:"conflicts"`
	Unchanged  int `json:"unchanged"`
	Deselected int `json:"deselected"`
}

// Summarize counts items. Conflicts win over the other states.
func Summarize(items []model.RenamePreviewItem) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		switch {
		case it.HasConflict:
			s.Conflicts++
		case !it.IsSelected:
			s.Deselected++
		case it.IsNoOp():
			s.Unchanged++
		default:
			s.Renames++
		}
	}
	return s
}

// Status is a one-word label for an item, as shown in previews.
func Status(it model.RenamePreviewItem) string {
	switch {
	case it.HasConflict:
		return "Conflict"
	case !it.IsSelected:
		return "Skipped"
	case it.IsNoOp():
		return "No change"
	default:
		return "OK"
	}
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
