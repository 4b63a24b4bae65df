// Package model defines the data types shared by the scanner, planner, executor and the API surfaces.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// GPSCoordinates is a decimal-degree position read from a file's metadata.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FileRecord is one scanned file. It is created once per scan and never mutated.
type FileRecord struct {
	Name         string            `json:"name"`
	FullPath     string            `json:"fullPath"`
	RelativePath string            `json:"relativePath"`
	Extension    string            `json:"extension"`
	Size         int64             `json:"size"`
	CreatedAt    time.Time         `json:"createdAt"`
	ModifiedAt   time.Time         `json:"modifiedAt"`
	IsSelected   bool              `json:"isSelected"`
	Metadata     map[string]string `json:"metadata"`
	GPS          *GPSCoordinates   `json:"gpsCoordinates,omitempty"`
	DateTakenUTC *time.Time        `json:"dateTakenUtc,omitempty"`
}

// RenamePattern is a named rename template.
type RenamePattern struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

// VacationModeOptions controls day-folder bucketing.
type VacationModeOptions struct {
	Enabled          bool   `json:"enabled"`
	StartDate        *Date  `json:"startDate,omitempty"`
	DayFolderPattern string `json:"dayFolderPattern"` // e.g. "Day {day_number}"
	SubfolderPattern string `json:"subfolderPattern,omitempty"`
}

// RenamePreviewItem is one planned rename.
type RenamePreviewItem struct {
	OriginalName string `json:"originalName"`
	NewName      string `json:"newName"`
	FullPath     string `json:"fullPath"`
	RelativePath string `json:"relativePath"`
	HasConflict  bool   `json:"hasConflict"`
	IsSelected   bool   `json:"isSelected"`
	DayNumber    *int   `json:"dayNumber,omitempty"`
}

// IsNoOp reports whether the item would leave the file name unchanged.
func (i RenamePreviewItem) IsNoOp() bool {
	return i.OriginalName == i.NewName
}

// Executable reports whether the executor should attempt the item.
func (i RenamePreviewItem) Executable() bool {
	return i.IsSelected && !i.HasConflict && !i.IsNoOp()
}

// RenameResult is the outcome of one attempted rename.
type RenameResult struct {
	OriginalPath string `json:"originalPath"`
	NewPath      string `json:"newPath"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time of day. It marshals as YYYY-MM-DD and
// accepts RFC 3339 timestamps when unmarshalling.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location and returns it as a UTC midnight.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return NewDate(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
