package mcp

import "github.com/takeshy/reshape/internal/model"

// ScanFolderInput represents input for the scan_folder tool
type ScanFolderInput struct {
	FolderPath    string   `json:"folder_path" jsonschema:"absolute path of the folder to scan"`
	Extensions    []string `json:"extensions,omitempty" jsonschema:"file extensions to include, e.g. jpg or .png (default: all files)"`
	IncludeHidden bool     `json:"include_hidden,omitempty" jsonschema:"include dot files and dot directories"`
}

// ScanFolderOutput represents output from the scan_folder tool
type ScanFolderOutput struct {
	FolderPath string     `json:"folder_path"`
	Files      []FileInfo `json:"files"`
	Total      int        `json:"total"`
}

// FileInfo represents a single scanned file
type FileInfo struct {
	Name         string            `json:"name"`
	RelativePath string            `json:"relative_path,omitempty"`
	Size         int64             `json:"size"`
	DateTakenUTC string            `json:"date_taken_utc,omitempty"`
	Metadata     map[string]string `json:"metadata"`
}

// PreviewRenameInput represents input for the preview_rename tool
type PreviewRenameInput struct {
	FolderPath       string   `json:"folder_path" jsonschema:"absolute path of the folder to rename"`
	Pattern          string   `json:"pattern" jsonschema:"rename pattern, e.g. {year}-{month}-{day}_{filename} or IMG_{counter:4}"`
	Extensions       []string `json:"extensions,omitempty" jsonschema:"file extensions to include (default: all files)"`
	VacationMode     bool     `json:"vacation_mode,omitempty" jsonschema:"group files into day folders by capture date"`
	StartDate        string   `json:"start_date,omitempty" jsonschema:"first day of the trip as YYYY-MM-DD (default: earliest capture date)"`
	DayFolderPattern string   `json:"day_folder_pattern,omitempty" jsonschema:"day folder name pattern (default: Day {day_number})"`
	SubfolderPattern string   `json:"subfolder_pattern,omitempty" jsonschema:"optional subfolder pattern inside each day folder"`
}

// PreviewRenameOutput represents output from the preview_rename tool
type PreviewRenameOutput struct {
	Items     []PreviewItem `json:"items"`
	Total     int           `json:"total"`
	Renames   int           `json:"renames"`
	Conflicts int           `json:"conflicts"`
}

// PreviewItem represents a single planned rename
type PreviewItem struct {
	OriginalName string `json:"original_name"`
	NewName      string `json:"new_name"`
	RelativePath string `json:"relative_path,omitempty"`
	Status       string `json:"status"`
	DayNumber    int    `json:"day_number,omitempty"`
}

// ExecuteRenameInput represents input for the execute_rename tool
type ExecuteRenameInput struct {
	FolderPath       string   `json:"folder_path" jsonschema:"absolute path of the folder to rename"`
	Pattern          string   `json:"pattern" jsonschema:"rename pattern, e.g. {year}-{month}-{day}_{filename} or IMG_{counter:4}"`
	Extensions       []string `json:"extensions,omitempty" jsonschema:"file extensions to include (default: all files)"`
	VacationMode     bool     `json:"vacation_mode,omitempty" jsonschema:"group files into day folders by capture date"`
	StartDate        string   `json:"start_date,omitempty" jsonschema:"first day of the trip as YYYY-MM-DD (default: earliest capture date)"`
	DayFolderPattern string   `json:"day_folder_pattern,omitempty" jsonschema:"day folder name pattern (default: Day {day_number})"`
	SubfolderPattern string   `json:"subfolder_pattern,omitempty" jsonschema:"optional subfolder pattern inside each day folder"`
	DryRun           bool     `json:"dry_run,omitempty" jsonschema:"report what would happen without renaming anything"`
}

func (in ExecuteRenameInput) preview() PreviewRenameInput {
	return PreviewRenameInput{
		FolderPath:       in.FolderPath,
		Pattern:          in.Pattern,
		Extensions:       in.Extensions,
		VacationMode:     in.VacationMode,
		StartDate:        in.StartDate,
		DayFolderPattern: in.DayFolderPattern,
		SubfolderPattern: in.SubfolderPattern,
	}
}

// ExecuteRenameOutput represents output from the execute_rename tool
type ExecuteRenameOutput struct {
	Results      []model.RenameResult `json:"results"`
	SuccessCount int                  `json:"success_count"`
	ErrorCount   int                  `json:"error_count"`
	Skipped      int                  `json:"skipped"`
	DryRun       bool                 `json:"dry_run"`
}

// GetMetadataInput represents input for the get_metadata tool
type GetMetadataInput struct {
	FilePath string `json:"file_path" jsonschema:"absolute path of the file"`
}

// GetMetadataOutput represents output from the get_metadata tool
type GetMetadataOutput struct {
	FilePath     string            `json:"file_path"`
	Values       map[string]string `json:"values"`
	Timezone     string            `json:"timezone,omitempty"`
	DateTakenUTC string            `json:"date_taken_utc,omitempty"`
}

// ListPatternsInput represents input for the list_patterns tool
type ListPatternsInput struct{}

// ListPatternsOutput represents output from the list_patterns tool
type ListPatternsOutput struct {
	Patterns []model.RenamePattern `json:"patterns"`
	Total    int                   `json:"total"`
}

// AddPatternInput represents input for the add_pattern tool
type AddPatternInput struct {
	Pattern     string `json:"pattern" jsonschema:"rename pattern to save"`
	Description string `json:"description,omitempty" jsonschema:"short description shown next to the pattern"`
}

// RemovePatternInput represents input for the remove_pattern tool
type RemovePatternInput struct {
	Pattern string `json:"pattern" jsonschema:"saved pattern to remove"`
}

// PatternOutput represents output from the add_pattern and remove_pattern tools
type PatternOutput struct {
	Success bool   `json:"success"`
	Pattern string `json:"pattern"`
	Error   string `json:"error,omitempty"`
}
