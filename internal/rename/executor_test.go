package rename

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/takeshy/reshape/internal/model"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func item(dir, from, to string) model.RenamePreviewItem {
	return model.RenamePreviewItem{
		OriginalName: from,
		NewName:      to,
		FullPath:     filepath.Join(dir, from),
		IsSelected:   true,
	}
}

func TestExecuteSkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "same.jpg"))
	touch(t, filepath.Join(dir, "conflict.jpg"))
	touch(t, filepath.Join(dir, "unselected.jpg"))

	noop := item(dir, "same.jpg", "same.jpg")
	conflict := item(dir, "conflict.jpg", "other.jpg")
	conflict.HasConflict = true
	unselected := item(dir, "unselected.jpg", "moved.jpg")
	unselected.IsSelected = false

	for _, dryRun := range []bool{true, false} {
		results, err := NewExecutor("", dryRun).Execute(context.Background(),
			[]model.RenamePreviewItem{noop, conflict, unselected})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 0 {
			t.Errorf("dryRun=%v: got %d results, want none", dryRun, len(results))
		}
	}
	for _, name := range []string{"same.jpg", "conflict.jpg", "unselected.jpg"} {
		if !exists(filepath.Join(dir, name)) {
			t.Errorf("%s should be untouched", name)
		}
	}
}

func TestExecuteInPlace(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "sub", "b.jpg"))

	items := []model.RenamePreviewItem{
		item(dir, "a.jpg", "x.jpg"),
		item(filepath.Join(dir, "sub"), "b.jpg", "y.jpg"),
	}

	var progressed []model.RenameResult
	e := NewExecutor(dir, false)
	e.Progress = func(r model.RenameResult) { progressed = append(progressed, r) }

	results, err := e.Execute(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if ok, failed := Count(results); ok != 2 || failed != 0 {
		t.Fatalf("success=%d failed=%d: %+v", ok, failed, results)
	}
	if !reflect.DeepEqual(progressed, results) {
		t.Error("progress callback should see every result in order")
	}
	if !exists(filepath.Join(dir, "x.jpg")) || exists(filepath.Join(dir, "a.jpg")) {
		t.Error("a.jpg was not renamed")
	}
	// Names without folders stay in the source directory even with a base folder.
	if !exists(filepath.Join(dir, "sub", "y.jpg")) {
		t.Error("sub/b.jpg should be renamed in place")
	}
}

func TestExecuteCreatesFolders(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	items := []model.RenamePreviewItem{item(dir, "a.jpg", "Day 1/a_001.jpg")}

	results, err := NewExecutor(dir, true).Execute(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("dry run results = %+v", results)
	}
	if want := filepath.Join(dir, "Day 1", "a_001.jpg"); results[0].NewPath != want {
		t.Errorf("NewPath = %q, want %q", results[0].NewPath, want)
	}
	if exists(filepath.Join(dir, "Day 1")) {
		t.Error("dry run must not create directories")
	}

	results, err = NewExecutor(dir, false).Execute(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}
	if !exists(filepath.Join(dir, "Day 1", "a_001.jpg")) {
		t.Error("file not moved into day folder")
	}
}

func TestExecuteFolderWithoutBase(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "sub", "a.jpg"))
	items := []model.RenamePreviewItem{item(filepath.Join(dir, "sub"), "a.jpg", "Day 2/a.jpg")}

	e := NewExecutor("", true)
	if got, want := e.Destination(items[0]), filepath.Join(dir, "sub", "Day 2", "a.jpg"); got != want {
		t.Errorf("Destination = %q, want %q", got, want)
	}
}

func TestExecuteFailuresContinue(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "c.jpg"))
	touch(t, filepath.Join(dir, "taken.jpg"))

	items := []model.RenamePreviewItem{
		item(dir, "missing.jpg", "m.jpg"),
		item(dir, "b.jpg", "taken.jpg"),
		item(dir, "c.jpg", "d.jpg"),
	}

	dry, err := NewExecutor("", true).Execute(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	actual, err := NewExecutor("", false).Execute(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}

	if len(actual) != 3 {
		t.Fatalf("got %d results, want 3", len(actual))
	}
	for i := range actual {
		if dry[i].Success != actual[i].Success || dry[i].NewPath != actual[i].NewPath {
			t.Errorf("item %d: dry run predicted %+v, actual run got %+v", i, dry[i], actual[i])
		}
	}
	if actual[0].Success || actual[1].Success || !actual[2].Success {
		t.Errorf("unexpected outcomes: %+v", actual)
	}
	if actual[1].Error == "" {
		t.Error("failure should carry an error message")
	}
	if !exists(filepath.Join(dir, "b.jpg")) {
		t.Error("existing destination must not be overwritten")
	}
}

func TestExecuteMoveError(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.jpg"))

	e := NewExecutor("", false)
	calls := 0
	e.move = func(src, dest string) error {
		calls++
		if calls == 1 {
			return errors.New("disk on fire")
		}
		return os.Rename(src, dest)
	}

	results, err := e.Execute(context.Background(), []model.RenamePreviewItem{
		item(dir, "a.jpg", "x.jpg"),
		item(dir, "b.jpg", "y.jpg"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Success || results[0].Error == "" {
		t.Errorf("first item should fail: %+v", results[0])
	}
	if !results[1].Success {
		t.Errorf("second item should succeed: %+v", results[1])
	}
}

func TestExecuteCancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	e := NewExecutor("", false)
	e.Progress = func(model.RenameResult) { cancel() }

	results, err := e.Execute(ctx, []model.RenamePreviewItem{
		item(dir, "a.jpg", "x.jpg"),
		item(dir, "b.jpg", "y.jpg"),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results = %+v", results)
	}
	if !exists(filepath.Join(dir, "x.jpg")) || !exists(filepath.Join(dir, "b.jpg")) {
		t.Error("first move kept, second never attempted")
	}
}
