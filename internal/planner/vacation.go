package planner

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/naming"
)

// DefaultDayFolderPattern names day folders when none is configured.
const DefaultDayFolderPattern = "Day {day_number}"

type datedFile struct {
	model.FileRecord
	taken time.Time
	day   int
}

// planVacation returns ok=false when no file has a capture time, in which case
// the caller falls back to the standard plan.
func planVacation(files []model.FileRecord, opts Options) ([]model.RenamePreviewItem, bool) {
	var dated []datedFile
	var undated []model.FileRecord
	for _, f := range files {
		if f.DateTakenUTC == nil {
			undated = append(undated, f)
			continue
		}
		dated = append(dated, datedFile{FileRecord: f, taken: f.DateTakenUTC.UTC()})
	}
	if len(dated) == 0 {
		return nil, false
	}

	start := startDate(dated, opts.Vacation.StartDate)
	for i := range dated {
		dated[i].day = DayNumber(start, dated[i].taken)
	}

	// Ties keep scan order.
	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].day != dated[j].day {
			return dated[i].day < dated[j].day
		}
		return dated[i].taken.Before(dated[j].taken)
	})

	folderPattern := opts.Vacation.DayFolderPattern
	if strings.TrimSpace(folderPattern) == "" {
		folderPattern = DefaultDayFolderPattern
	}

	items := make([]model.RenamePreviewItem, 0, len(files))
	global := 0
	var folder string
	dayCounter := 0
	currentDay := 0

	for _, f := range dated {
		if f.day != currentDay {
			currentDay = f.day
			dayCounter = 0
			folder = dayFolderName(folderPattern, f.Metadata, f.day)
		}
		dayCounter++
		global++

		meta := withCounters(f.Metadata, f.day, dayCounter, global)
		base := naming.ApplyCounter(naming.Expand(opts.Pattern, meta), dayCounter)

		dir := folder
		if sp := opts.Vacation.SubfolderPattern; strings.TrimSpace(sp) != "" {
			if sub := naming.ApplyCounter(naming.ExpandPath(sp, meta), dayCounter); sub != "" {
				dir = path.Join(folder, sub)
			}
		}

		day := f.day
		items = append(items, model.RenamePreviewItem{
			OriginalName: f.Name,
			NewName:      path.Join(dir, base+f.Extension),
			FullPath:     f.FullPath,
			RelativePath: f.RelativePath,
			IsSelected:   f.IsSelected,
			DayNumber:    &day,
		})
	}

	markConflicts(items, func(i int) string {
		return filepath.Join(destinationRoot(opts.BaseFolder, items[i].FullPath), filepath.FromSlash(items[i].NewName))
	}, opts.exists())

	for _, f := range undated {
		items = append(items, model.RenamePreviewItem{
			OriginalName: f.Name,
			NewName:      f.Name,
			FullPath:     f.FullPath,
			RelativePath: f.RelativePath,
		})
	}
	return items, true
}

func destinationRoot(base, fullPath string) string {
	if base != "" {
		return base
	}
	return filepath.Dir(fullPath)
}

// startDate is the configured date, or the UTC calendar date of the earliest
// capture time.
func startDate(dated []datedFile, configured *model.Date) time.Time {
	if configured != nil && !configured.IsZero() {
		return model.NewDate(configured.Time).Time
	}
	earliest := dated[0].taken
	for _, f := range dated[1:] {
		if f.taken.Before(earliest) {
			earliest = f.taken
		}
	}
	return model.NewDate(earliest).Time
}

// DayNumber is the 1-based day of taken (UTC) counted from start. Captures
// before start collapse into day 1.
func DayNumber(start, taken time.Time) int {
	s := model.NewDate(start.UTC()).Time
	t := model.NewDate(taken.UTC()).Time
	days := int(t.Sub(s).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// dayFolderName expands the day folder template. The first file of the day
// supplies the remaining placeholders, so "{date_taken} Day {day}" works too.
func dayFolderName(pattern string, meta map[string]string, day int) string {
	values := make(map[string]string, len(meta)+2)
	for k, v := range meta {
		values[k] = v
	}
	values["day_number"] = itoa(day)
	values["day"] = pad(day, 2)

	name := naming.ApplyCounter(naming.ExpandPath(pattern, values), day)
	if name == "" {
		name = "Day " + itoa(day)
	}
	return name
}

func withCounters(meta map[string]string, day, dayCounter, global int) map[string]string {
	values := make(map[string]string, len(meta)+3)
	for k, v := range meta {
		values[k] = v
	}
	values["day_number"] = itoa(day)
	values["day_counter"] = pad(dayCounter, 3)
	values["global_counter"] = pad(global, 4)
	return values
}
