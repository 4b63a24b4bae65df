package metadata

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/naming"
)

// ExifProvider adds EXIF values on top of StatProvider for image files.
type ExifProvider struct{}

// NewProvider returns the default provider.
func NewProvider() Provider {
	return ExifProvider{}
}

// Extract implements Provider. EXIF problems are logged at debug level and the
// filesystem values are returned unchanged.
func (ExifProvider) Extract(path string) (*Extraction, error) {
	e, err := StatProvider{}.Extract(path)
	if err != nil {
		return nil, err
	}
	if !IsImage(strings.ToLower(filepath.Ext(path))) {
		return e, nil
	}
	if err := readExif(path, e); err != nil {
		logging.Debug("exif extraction skipped", logging.String("path", path), logging.Err(err))
	}
	return e, nil
}

func readExif(path string, e *Extraction) (err error) {
	defer func() {
		// goexif can panic on malformed IFDs.
		if r := recover(); r != nil {
			err = fmt.Errorf("exif decoder panic: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return err
	}

	if dt, err := x.DateTime(); err == nil {
		// Keep the wall clock only; the zone goexif guesses is not trusted.
		wall := time.Date(dt.Year(), dt.Month(), dt.Day(), dt.Hour(), dt.Minute(), dt.Second(), 0, time.UTC)
		e.applyDateTaken(wall)
	}

	if v := tagString(x, exif.Make); v != "" {
		e.Values["camera_make"] = naming.SanitizeFilename(v)
	}
	if v := tagString(x, exif.Model); v != "" {
		e.Values["camera_model"] = naming.SanitizeFilename(v)
	}

	if w, ok := tagInt(x, exif.PixelXDimension, exif.ImageWidth); ok {
		e.Values["width"] = fmt.Sprint(w)
	}
	if h, ok := tagInt(x, exif.PixelYDimension, exif.ImageLength); ok {
		e.Values["height"] = fmt.Sprint(h)
	}

	if lat, lon, err := x.LatLong(); err == nil && !math.IsNaN(lat) && !math.IsNaN(lon) {
		e.GPS = &model.GPSCoordinates{Latitude: lat, Longitude: lon}
		e.Values["gps_lat"] = fmt.Sprintf("%.6f", lat)
		e.Values["gps_lon"] = fmt.Sprintf("%.6f", lon)
	}

	return nil
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	if tag.Format() == tiff.StringVal {
		s, _ := tag.StringVal()
		return strings.TrimSpace(strings.TrimRight(s, "\x00"))
	}
	return strings.TrimSpace(tag.String())
}

// tagInt returns the first of names that holds an integer.
func tagInt(x *exif.Exif, names ...exif.FieldName) (int, bool) {
	for _, name := range names {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		if v, err := tag.Int(0); err == nil {
			return v, true
		}
	}
	return 0, false
}
