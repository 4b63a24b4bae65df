package store

import "github.com/takeshy/reshape/internal/model"

// DefaultPatterns returns the built-in rename templates.
func DefaultPatterns() []model.RenamePattern {
	return []model.RenamePattern{
		{Pattern: "{year}-{month}-{day}_{filename}", Description: "Date prefix: 2024-01-15_photo"},
		{Pattern: "{date_taken}_{time_taken}_{filename}", Description: "EXIF date/time: 2024-01-15_14-30-00_photo"},
		{Pattern: "{year}/{month}/{filename}", Description: "Year/Month folders (use with caution)"},
		{Pattern: "{camera_model}_{date_taken}_{counter:4}", Description: "Camera + date + counter: iPhone_2024-01-15_0001"},
		{Pattern: "{filename}_{counter:3}", Description: "Original name + counter: photo_001"},
		{Pattern: "IMG_{year}{month}{day}_{counter:4}", Description: "Standard format: IMG_20240115_0001"},
	}
}
