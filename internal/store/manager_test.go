package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewManagerEmpty(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(m.List()) != 0 {
		t.Errorf("expected no custom patterns, got %v", m.List())
	}
	if got, want := len(m.All()), len(DefaultPatterns()); got != want {
		t.Errorf("All() = %d patterns, want %d defaults", got, want)
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	m, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Add("{year}_{filename}", "Year prefix"); err != nil {
		t.Fatal(err)
	}
	if err := m.Add("{YEAR}_{FILENAME}", "dup"); !errors.Is(err, ErrPatternExists) {
		t.Errorf("duplicate add err = %v, want ErrPatternExists", err)
	}
	if err := m.Add("   ", "blank"); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("blank add err = %v, want ErrEmptyPattern", err)
	}
	if err := m.Add("{camera_model}_{counter}", "Camera"); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := reloaded.List()
	if len(got) != 2 || got[0].Pattern != "{year}_{filename}" || got[0].Description != "Year prefix" {
		t.Fatalf("reloaded = %+v", got)
	}
	all := reloaded.All()
	if all[len(all)-1].Pattern != "{camera_model}_{counter}" {
		t.Errorf("custom patterns should follow defaults: %+v", all)
	}

	if !reloaded.Remove("{Year}_{Filename}") {
		t.Error("Remove should match case-insensitively")
	}
	if reloaded.Remove("{nope}") {
		t.Error("Remove of unknown pattern should report false")
	}
	if len(reloaded.List()) != 1 {
		t.Errorf("after remove = %+v", reloaded.List())
	}
}

func TestCorruptFileLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, patternsFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("corrupt file should not fail: %v", err)
	}
	if len(m.List()) != 0 {
		t.Errorf("expected empty store, got %v", m.List())
	}
}

func TestDefaultPatterns(t *testing.T) {
	for _, p := range DefaultPatterns() {
		if p.Pattern == "" || p.Description == "" {
			t.Errorf("incomplete default pattern %+v", p)
		}
	}
}
