// Package rename applies planned renames to the filesystem.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/model"
)

// ErrDestinationExists is reported when the target path is already taken.
var ErrDestinationExists = errors.New("destination already exists")

// Executor moves files according to preview items
type Executor struct {
	// BaseFolder anchors new names that contain folders. When empty they are
	// resolved against each source file's directory.
	BaseFolder string
	DryRun     bool

	// Progress, if set, is called after every attempted item.
	Progress func(model.RenameResult)

	mkdirAll func(string, os.FileMode) error
	move     func(string, string) error
}

// NewExecutor creates an executor
func NewExecutor(baseFolder string, dryRun bool) *Executor {
	return &Executor{
		BaseFolder: baseFolder,
		DryRun:     dryRun,
		mkdirAll:   os.MkdirAll,
		move:       os.Rename,
	}
}

// Execute attempts every selected, conflict-free item whose name changes, in
// input order. A failing item is recorded and the batch continues. ctx is
// checked before each item; on cancellation the results so far are returned
// together with ctx.Err(). Completed moves are never rolled back.
func (e *Executor) Execute(ctx context.Context, items []model.RenamePreviewItem) ([]model.RenameResult, error) {
	var results []model.RenameResult

	for _, item := range items {
		if !item.Executable() {
			continue
		}
		if err := ctx.Err(); err != nil {
			logging.Warn("rename cancelled", logging.Int("completed", len(results)))
			return results, err
		}

		dest := e.Destination(item)
		if samePath(dest, item.FullPath) {
			continue
		}

		result := model.RenameResult{OriginalPath: item.FullPath, NewPath: dest}
		if err := e.apply(item.FullPath, dest); err != nil {
			result.Error = err.Error()
			logging.Warn("rename failed",
				logging.String("from", item.FullPath),
				logging.String("to", dest),
				logging.Err(err))
		} else {
			result.Success = true
			logging.Debug("renamed",
				logging.String("from", item.FullPath),
				logging.String("to", dest),
				logging.Bool("dry_run", e.DryRun))
		}

		results = append(results, result)
		if e.Progress != nil {
			e.Progress(result)
		}
	}

	return results, nil
}

// Destination resolves the absolute target path for item.
func (e *Executor) Destination(item model.RenamePreviewItem) string {
	newName := filepath.FromSlash(item.NewName)
	sourceDir := filepath.Dir(item.FullPath)

	if !strings.ContainsAny(item.NewName, `/\`) {
		return filepath.Join(sourceDir, newName)
	}
	root := e.BaseFolder
	if root == "" {
		root = sourceDir
	}
	return filepath.Join(root, newName)
}

// apply validates and, unless this is a dry run, performs one move. Dry runs
// run the same checks so they predict real-run failures.
func (e *Executor) apply(src, dest string) error {
	if _, err := os.Lstat(src); err != nil {
		return fmt.Errorf("source unavailable: %w", err)
	}
	if _, err := os.Lstat(dest); err == nil {
		if !samePath(src, dest) && !sameFile(src, dest) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dest)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check destination: %w", err)
	}

	if e.DryRun {
		return nil
	}

	mkdirAll, move := e.mkdirAll, e.move
	if mkdirAll == nil {
		mkdirAll = os.MkdirAll
	}
	if move == nil {
		move = os.Rename
	}

	if dir := filepath.Dir(dest); dir != filepath.Dir(src) {
		if err := mkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := move(src, dest); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// sameFile is true when dest is src under a different spelling, which is the
// case for case-only renames on case-insensitive filesystems.
func sameFile(src, dest string) bool {
	si, err := os.Stat(src)
	if err != nil {
		return false
	}
	di, err := os.Stat(dest)
	if err != nil {
		return false
	}
	return os.SameFile(si, di)
}

// Count returns the number of successful and failed results.
func Count(results []model.RenameResult) (success, failed int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
		}
	}
	return success, failed
}
