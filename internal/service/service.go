// Package service ties the scanner, planner and executor together for the
// CLI, HTTP and MCP front ends.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/takeshy/reshape/internal/fileutil"
	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/metadata"
	"github.com/takeshy/reshape/internal/metrics"
	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/planner"
	"github.com/takeshy/reshape/internal/rename"
	"github.com/takeshy/reshape/internal/store"
)

var (
	// ErrMissingFolder is returned when a request has no folder path.
	ErrMissingFolder = errors.New("folder path is required")
	// ErrNotFound is returned when a requested file or folder does not exist.
	ErrNotFound = errors.New("not found")
)

// Service runs scans, previews and renames against the local filesystem.
type Service struct {
	Patterns *store.Manager
	Provider metadata.Provider
}

// New creates a Service. A nil provider falls back to the EXIF provider.
func New(patterns *store.Manager, provider metadata.Provider) *Service {
	if provider == nil {
		provider = metadata.NewProvider()
	}
	return &Service{Patterns: patterns, Provider: provider}
}

// ScanRequest selects the files of a folder.
type ScanRequest struct {
	FolderPath    string   `json:"folderPath"`
	Extensions    []string `json:"extensions,omitempty"`
	Exclude       []string `json:"exclude,omitempty"` // regexes matched against full paths
	Filter        string   `json:"filter,omitempty"`  // regex matched against relative path/name
	IncludeHidden bool     `json:"includeHidden,omitempty"`
}

// ScanResponse lists the scanned files.
type ScanResponse struct {
	FolderPath string             `json:"folderPath"`
	Files      []model.FileRecord `json:"files"`
	TotalCount int                `json:"totalCount"`
}

// PreviewRequest plans a rename of a folder.
type PreviewRequest struct {
	ScanRequest
	Pattern      string                     `json:"pattern"`
	VacationMode *model.VacationModeOptions `json:"vacationMode,omitempty"`
}

// PreviewResponse holds the planned items.
type PreviewResponse struct {
	FolderPath    string                    `json:"folderPath"`
	Items         []model.RenamePreviewItem `json:"items"`
	ConflictCount int                       `json:"conflictCount"`
	Summary       planner.Summary           `json:"summary"`
}

// RenameRequest executes previously planned items.
type RenameRequest struct {
	Items          []model.RenamePreviewItem `json:"items"`
	BaseFolderPath string                    `json:"baseFolderPath,omitempty"`
	DryRun         bool                      `json:"dryRun"`
}

// RenameResponse reports the outcome of every attempted item.
type RenameResponse struct {
	Results      []model.RenameResult `json:"results"`
	SuccessCount int                  `json:"successCount"`
	ErrorCount   int                  `json:"errorCount"`
	DryRun       bool                 `json:"dryRun"`
}

// MetadataResponse is the extracted metadata of one file.
type MetadataResponse struct {
	Path         string                `json:"path"`
	Values       map[string]string     `json:"values"`
	GPS          *model.GPSCoordinates `json:"gpsCoordinates,omitempty"`
	Timezone     string                `json:"timezone,omitempty"`
	DateTakenUTC string                `json:"dateTakenUtc,omitempty"`
}

// Scan lists the files of a folder with their metadata.
func (s *Service) Scan(req ScanRequest) (*ScanResponse, error) {
	folder, err := cleanFolder(req.FolderPath)
	if err != nil {
		return nil, err
	}

	files, err := fileutil.ScanFolder(folder, fileutil.ScanOptions{
		Extensions:      req.Extensions,
		ExcludePatterns: req.Exclude,
		IncludeHidden:   req.IncludeHidden,
	}, s.Provider)
	if err != nil {
		if errors.Is(err, fileutil.ErrDirectoryNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to scan folder: %w", err)
	}
	if req.Filter != "" {
		if files, err = fileutil.FilterByPattern(files, req.Filter); err != nil {
			return nil, err
		}
	}
	metrics.RecordScan(len(files))

	if files == nil {
		files = []model.FileRecord{}
	}
	return &ScanResponse{FolderPath: folder, Files: files, TotalCount: len(files)}, nil
}

// Preview scans a folder and plans the rename. The plan touches nothing.
func (s *Service) Preview(req PreviewRequest) (*PreviewResponse, error) {
	if strings.TrimSpace(req.Pattern) == "" {
		return nil, planner.ErrEmptyPattern
	}

	scan, err := s.Scan(req.ScanRequest)
	if err != nil {
		return nil, err
	}

	items, err := planner.Plan(scan.Files, planner.Options{
		Pattern:    req.Pattern,
		Vacation:   req.VacationMode,
		BaseFolder: scan.FolderPath,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.RenamePreviewItem{}
	}

	for _, it := range items {
		metrics.RecordPlanItem(planner.Status(it))
	}
	summary := planner.Summarize(items)
	logging.Debug("planned rename",
		logging.String("folder", scan.FolderPath),
		logging.String("pattern", req.Pattern),
		logging.Int("items", summary.Total),
		logging.Int("conflicts", summary.Conflicts))

	return &PreviewResponse{
		FolderPath:    scan.FolderPath,
		Items:         items,
		ConflictCount: summary.Conflicts,
		Summary:       summary,
	}, nil
}

// Rename executes the given items. progress, when non-nil, is called after
// every attempted item.
func (s *Service) Rename(ctx context.Context, req RenameRequest, progress func(model.RenameResult)) (*RenameResponse, error) {
	base := req.BaseFolderPath
	if base != "" {
		base = filepath.Clean(base)
	}

	e := rename.NewExecutor(base, req.DryRun)
	e.Progress = func(r model.RenameResult) {
		metrics.RecordRename(r.Success, req.DryRun)
		if progress != nil {
			progress(r)
		}
	}

	results, err := e.Execute(ctx, req.Items)
	if results == nil {
		results = []model.RenameResult{}
	}
	ok, failed := rename.Count(results)
	resp := &RenameResponse{Results: results, SuccessCount: ok, ErrorCount: failed, DryRun: req.DryRun}
	if err != nil {
		return resp, fmt.Errorf("rename interrupted: %w", err)
	}
	return resp, nil
}

// Metadata extracts the metadata of a single file.
func (s *Service) Metadata(path string) (*MetadataResponse, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	path = filepath.Clean(path)

	ext, err := s.Provider.Extract(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	resp := &MetadataResponse{Path: path, Values: ext.Values, GPS: ext.GPS}
	if ext.GPS != nil {
		if tz, ok := metadata.ResolveTimezone(ext.GPS.Latitude, ext.GPS.Longitude); ok {
			resp.Timezone = tz
		}
	}
	if utc := ext.DateTakenUTC(); utc != nil {
		resp.DateTakenUTC = utc.Format("2006-01-02T15:04:05Z")
	}
	return resp, nil
}

// AllPatterns returns the default and custom rename patterns.
func (s *Service) AllPatterns() []model.RenamePattern {
	if s.Patterns == nil {
		return store.DefaultPatterns()
	}
	return s.Patterns.All()
}

// AddPattern stores and persists a custom pattern.
func (s *Service) AddPattern(pattern, description string) error {
	if s.Patterns == nil {
		return fmt.Errorf("pattern store is not configured")
	}
	if err := s.Patterns.Add(pattern, description); err != nil {
		return err
	}
	if err := s.Patterns.Save(); err != nil {
		return fmt.Errorf("failed to save patterns: %w", err)
	}
	return nil
}

// RemovePattern deletes and persists a custom pattern. It reports whether the
// pattern existed.
func (s *Service) RemovePattern(pattern string) (bool, error) {
	if s.Patterns == nil {
		return false, fmt.Errorf("pattern store is not configured")
	}
	if !s.Patterns.Remove(pattern) {
		return false, nil
	}
	if err := s.Patterns.Save(); err != nil {
		return true, fmt.Errorf("failed to save patterns: %w", err)
	}
	return true, nil
}

func cleanFolder(folder string) (string, error) {
	if strings.TrimSpace(folder) == "" {
		return "", ErrMissingFolder
	}
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve folder path: %w", err)
	}
	return abs, nil
}
