package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/takeshy/reshape/internal/model"
)

func TestResolveTimezone(t *testing.T) {
	cases := []struct {
		lon  float64
		want string
	}{
		{0, "Europe/London"},
		{13.4, "Europe/Berlin"},
		{139.7, "Asia/Tokyo"},
		{-74.0, "America/New_York"},
		{-118.2, "America/Los_Angeles"},
		{180, "Pacific/Auckland"},
		{-180, "Etc/GMT+12"},
	}
	for _, tc := range cases {
		got, ok := ResolveTimezone(10, tc.lon)
		if !ok || got != tc.want {
			t.Errorf("ResolveTimezone(10, %v) = %q, %v; want %q", tc.lon, got, ok, tc.want)
		}
	}

	if _, ok := ResolveTimezone(0, 200); ok {
		t.Error("out of range longitude should not resolve")
	}
}

func TestToUTC(t *testing.T) {
	local := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	if got := ToUTC(local, nil); !got.Equal(local) {
		t.Errorf("without gps got %v, want %v", got, local)
	}

	tokyo := &model.GPSCoordinates{Latitude: 35.68, Longitude: 139.76}
	want := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	if got := ToUTC(local, tokyo); !got.Equal(want) {
		t.Errorf("tokyo got %v, want %v", got, want)
	}

	bad := &model.GPSCoordinates{Latitude: 0, Longitude: 999}
	if got := ToUTC(local, bad); !got.Equal(local) {
		t.Errorf("unresolvable gps got %v, want wall clock %v", got, local)
	}
}

func TestStatProviderKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Holiday.TXT")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2023, 7, 4, 9, 8, 7, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	e, err := StatProvider{}.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := map[string]string{
		"filename":      "Holiday",
		"ext":           "txt",
		"size":          "5",
		"modified":      "2023-07-04",
		"modified_time": "09-08-07",
		"year":          "2023",
		"month":         "07",
		"day":           "04",
	}
	for k, v := range want {
		if got := e.Values[k]; got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	for _, k := range []string{"created", "created_time"} {
		if e.Values[k] == "" {
			t.Errorf("%s missing", k)
		}
	}
	if e.DateTakenLocal != nil || e.DateTakenUTC() != nil {
		t.Error("plain file should have no capture time")
	}
}

func TestExifProviderFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	e, err := NewProvider().Extract(path)
	if err != nil {
		t.Fatalf("corrupt image must not fail extraction: %v", err)
	}
	if e.Values["filename"] != "broken" {
		t.Errorf("filename = %q", e.Values["filename"])
	}
	if _, ok := e.Values["date_taken"]; ok {
		t.Error("date_taken should be absent")
	}
	if e.GPS != nil {
		t.Error("gps should be absent")
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, err := NewProvider().Extract(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDateTaken(t *testing.T) {
	e := &Extraction{Values: map[string]string{"year": "1999"}}
	e.applyDateTaken(time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC))

	if e.Values["date_taken"] != "2024-03-09" || e.Values["time_taken"] != "14-30-05" {
		t.Errorf("got %q %q", e.Values["date_taken"], e.Values["time_taken"])
	}
	if e.Values["year"] != "2024" || e.Values["month"] != "03" || e.Values["day"] != "09" {
		t.Errorf("date keys not overridden: %v", e.Values)
	}
	if e.DateTakenUTC() == nil {
		t.Error("expected capture time")
	}
}
