// Package metadata extracts placeholder values from files: filesystem
// timestamps for every file and EXIF tags for images.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/takeshy/reshape/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15-04-05"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
}

// IsImage reports whether ext (lowercase, with dot) is an image extension
// worth probing for embedded metadata.
func IsImage(ext string) bool {
	return imageExtensions[ext]
}

// Extraction is the result of reading one file's metadata.
type Extraction struct {
	Values         map[string]string
	GPS            *model.GPSCoordinates
	DateTakenLocal *time.Time // wall clock as recorded by the camera, zone unknown
	CreatedAt      time.Time
	ModifiedAt     time.Time
	Size           int64
}

// Provider reads metadata for a file. Only failing to stat the file is an
// error; unreadable embedded metadata is not.
type Provider interface {
	Extract(path string) (*Extraction, error)
}

// StatProvider derives values from the filesystem only.
type StatProvider struct{}

// Extract implements Provider.
func (StatProvider) Extract(path string) (*Extraction, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	return fromFileInfo(path, info), nil
}

func fromFileInfo(path string, info os.FileInfo) *Extraction {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	modified := info.ModTime()
	created := birthTime(path, info)

	return &Extraction{
		Values: map[string]string{
			"filename":      strings.TrimSuffix(name, ext),
			"ext":           strings.TrimPrefix(strings.ToLower(ext), "."),
			"size":          strconv.FormatInt(info.Size(), 10),
			"created":       created.Format(dateLayout),
			"created_time":  created.Format(timeLayout),
			"modified":      modified.Format(dateLayout),
			"modified_time": modified.Format(timeLayout),
			"year":          strconv.Itoa(modified.Year()),
			"month":         fmt.Sprintf("%02d", int(modified.Month())),
			"day":           fmt.Sprintf("%02d", modified.Day()),
		},
		CreatedAt:  created,
		ModifiedAt: modified,
		Size:       info.Size(),
	}
}

// applyDateTaken overrides the date keys with the capture time.
func (e *Extraction) applyDateTaken(t time.Time) {
	e.Values["date_taken"] = t.Format(dateLayout)
	e.Values["time_taken"] = t.Format(timeLayout)
	e.Values["year"] = strconv.Itoa(t.Year())
	e.Values["month"] = fmt.Sprintf("%02d", int(t.Month()))
	e.Values["day"] = fmt.Sprintf("%02d", t.Day())
	local := t
	e.DateTakenLocal = &local
}

// DateTakenUTC converts the extracted capture time to UTC, see ToUTC.
func (e *Extraction) DateTakenUTC() *time.Time {
	if e.DateTakenLocal == nil {
		return nil
	}
	utc := ToUTC(*e.DateTakenLocal, e.GPS)
	return &utc
}
