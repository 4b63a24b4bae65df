package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/planner"
	"github.com/takeshy/reshape/internal/service"
)

// Flags shared by list, preview and rename.
var (
	folderPath    string
	extensions    []string
	excludes      []string
	includeHidden bool
	jsonOutput    bool

	renamePattern    string
	vacationMode     bool
	vacationStart    string
	dayFolderPattern string
	subfolderPattern string
)

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&folderPath, "path", "p", ".", "Folder to scan")
	cmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "File extensions to include, e.g. jpg,png (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Regex patterns to exclude files (can be specified multiple times)")
	cmd.Flags().BoolVar(&includeHidden, "hidden", false, "Include hidden files and directories")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
}

func addPlanFlags(cmd *cobra.Command) {
	addScanFlags(cmd)
	cmd.Flags().StringVarP(&renamePattern, "pattern", "P", "", "Rename pattern, e.g. \"{year}-{month}-{day}_{filename}\" (required)")
	cmd.Flags().BoolVar(&vacationMode, "vacation", false, "Group files into day folders by capture date")
	cmd.Flags().StringVar(&vacationStart, "start-date", "", "First day of the trip as YYYY-MM-DD (default: earliest capture date)")
	cmd.Flags().StringVar(&dayFolderPattern, "day-folder", planner.DefaultDayFolderPattern, "Day folder pattern, supports {day_number} and {day}")
	cmd.Flags().StringVar(&subfolderPattern, "subfolder", "", "Optional subfolder pattern inside each day folder")
	cmd.MarkFlagRequired("pattern")
}

func scanRequest() service.ScanRequest {
	return service.ScanRequest{
		FolderPath:    folderPath,
		Extensions:    extensions,
		Exclude:       excludes,
		IncludeHidden: includeHidden,
	}
}

func previewRequest() (service.PreviewRequest, error) {
	req := service.PreviewRequest{ScanRequest: scanRequest(), Pattern: renamePattern}
	if strings.TrimSpace(renamePattern) == "" {
		return req, fmt.Errorf("--pattern is required")
	}
	vacation, err := vacationOptions(vacationMode, vacationStart, dayFolderPattern, subfolderPattern)
	if err != nil {
		return req, err
	}
	req.VacationMode = vacation
	return req, nil
}

func vacationOptions(enabled bool, start, dayFolder, subfolder string) (*model.VacationModeOptions, error) {
	if !enabled {
		if start != "" {
			return nil, fmt.Errorf("--start-date requires --vacation")
		}
		return nil, nil
	}
	opts := &model.VacationModeOptions{
		Enabled:          true,
		DayFolderPattern: dayFolder,
		SubfolderPattern: subfolder,
	}
	if start != "" {
		d, err := model.ParseDate(start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start-date %q: %w", start, err)
		}
		opts.StartDate = &d
	}
	return opts, nil
}

func printPreview(items []model.RenamePreviewItem, vacation bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if vacation {
		fmt.Fprintln(w, "ORIGINAL\tNEW NAME\tDAY\tSTATUS")
		fmt.Fprintln(w, "--------\t--------\t---\t------")
	} else {
		fmt.Fprintln(w, "ORIGINAL\tNEW NAME\tSTATUS")
		fmt.Fprintln(w, "--------\t--------\t------")
	}
	for _, it := range items {
		original := it.OriginalName
		if it.RelativePath != "" {
			original = filepath.Join(it.RelativePath, it.OriginalName)
		}
		if vacation {
			day := "-"
			if it.DayNumber != nil {
				day = fmt.Sprintf("%d", *it.DayNumber)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", original, it.NewName, day, planner.Status(it))
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", original, it.NewName, planner.Status(it))
		}
	}
	w.Flush()
}

func printSummary(s planner.Summary) {
	fmt.Printf("\nTotal: %d files, %d to rename, %d unchanged, %d conflicts, %d skipped\n",
		s.Total, s.Renames, s.Unchanged, s.Conflicts, s.Deselected)
}
