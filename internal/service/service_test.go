package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/takeshy/reshape/internal/metadata"
	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/planner"
	"github.com/takeshy/reshape/internal/store"
)

func setup(t *testing.T, names ...string) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	patterns, err := store.NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(patterns, metadata.StatProvider{}), dir
}

func TestScan(t *testing.T) {
	svc, dir := setup(t, "a.jpg", "b.PNG", "notes.txt", "sub/c.jpg")

	resp, err := svc.Scan(ScanRequest{FolderPath: dir, Extensions: []string{"jpg", ".png"}})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalCount != 3 || len(resp.Files) != 3 {
		t.Fatalf("got %d files: %+v", resp.TotalCount, resp.Files)
	}

	resp, err = svc.Scan(ScanRequest{FolderPath: dir, Filter: `^sub`})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalCount != 1 || resp.Files[0].Name != "c.jpg" {
		t.Errorf("filtered scan = %+v", resp.Files)
	}
}

func TestScanErrors(t *testing.T) {
	svc, dir := setup(t)

	if _, err := svc.Scan(ScanRequest{}); !errors.Is(err, ErrMissingFolder) {
		t.Errorf("empty folder err = %v", err)
	}
	if _, err := svc.Scan(ScanRequest{FolderPath: filepath.Join(dir, "nope")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing folder err = %v", err)
	}
	resp, err := svc.Scan(ScanRequest{FolderPath: dir})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Files == nil || resp.TotalCount != 0 {
		t.Errorf("empty folder should return an empty, non-nil list: %+v", resp)
	}
}

func TestPreviewAndRename(t *testing.T) {
	svc, dir := setup(t, "a.jpg", "b.jpg")

	if _, err := svc.Preview(PreviewRequest{ScanRequest: ScanRequest{FolderPath: dir}}); !errors.Is(err, planner.ErrEmptyPattern) {
		t.Fatalf("empty pattern err = %v", err)
	}

	preview, err := svc.Preview(PreviewRequest{
		ScanRequest: ScanRequest{FolderPath: dir},
		Pattern:     "{filename}_{counter:3}",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(preview.Items) != 2 || preview.Items[0].NewName != "a_001.jpg" || preview.Items[1].NewName != "b_002.jpg" {
		t.Fatalf("items = %+v", preview.Items)
	}
	if preview.ConflictCount != 0 || preview.Summary.Renames != 2 {
		t.Errorf("summary = %+v", preview.Summary)
	}

	dry, err := svc.Rename(context.Background(), RenameRequest{Items: preview.Items, BaseFolderPath: dir, DryRun: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if dry.SuccessCount != 2 || !dry.DryRun {
		t.Fatalf("dry run = %+v", dry)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); err != nil {
		t.Error("dry run moved a file")
	}

	var seen int
	done, err := svc.Rename(context.Background(), RenameRequest{Items: preview.Items, BaseFolderPath: dir}, func(model.RenameResult) { seen++ })
	if err != nil {
		t.Fatal(err)
	}
	if done.SuccessCount != 2 || done.ErrorCount != 0 || seen != 2 {
		t.Fatalf("rename = %+v, progress calls = %d", done, seen)
	}
	if _, err := os.Stat(filepath.Join(dir, "b_002.jpg")); err != nil {
		t.Error("b.jpg was not renamed")
	}
}

func TestMetadata(t *testing.T) {
	svc, dir := setup(t, "photo.jpg")

	resp, err := svc.Metadata(filepath.Join(dir, "photo.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Values["filename"] != "photo" || resp.Values["ext"] != "jpg" {
		t.Errorf("values = %v", resp.Values)
	}
	if resp.DateTakenUTC != "" || resp.GPS != nil {
		t.Errorf("stat-only metadata should have no capture data: %+v", resp)
	}

	if _, err := svc.Metadata(filepath.Join(dir, "missing.jpg")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestPatterns(t *testing.T) {
	svc, _ := setup(t)

	if err := svc.AddPattern("{year}_{filename}", "Year prefix"); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddPattern("{YEAR}_{filename}", ""); !errors.Is(err, store.ErrPatternExists) {
		t.Errorf("duplicate err = %v", err)
	}
	all := svc.AllPatterns()
	if len(all) != len(store.DefaultPatterns())+1 {
		t.Errorf("AllPatterns = %d entries", len(all))
	}

	if _, err := os.Stat(svc.Patterns.Path()); err != nil {
		t.Errorf("pattern file not saved: %v", err)
	}

	removed, err := svc.RemovePattern("{year}_{filename}")
	if err != nil || !removed {
		t.Errorf("remove = %v, %v", removed, err)
	}
	removed, err = svc.RemovePattern("{year}_{filename}")
	if err != nil || removed {
		t.Errorf("second remove = %v, %v", removed, err)
	}
}
