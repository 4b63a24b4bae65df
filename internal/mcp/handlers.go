package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/planner"
	"github.com/takeshy/reshape/internal/service"
)

// handleScanFolder handles the scan_folder tool
func (s *Server) handleScanFolder(ctx context.Context, req *mcp.CallToolRequest, input ScanFolderInput) (*mcp.CallToolResult, ScanFolderOutput, error) {
	output := ScanFolderOutput{Files: []FileInfo{}}

	if input.FolderPath == "" {
		return nil, output, fmt.Errorf("folder_path is required")
	}

	resp, err := s.svc.Scan(service.ScanRequest{
		FolderPath:    input.FolderPath,
		Extensions:    input.Extensions,
		IncludeHidden: input.IncludeHidden,
	})
	if err != nil {
		return nil, output, err
	}

	output.FolderPath = resp.FolderPath
	for _, f := range resp.Files {
		info := FileInfo{
			Name:         f.Name,
			RelativePath: f.RelativePath,
			Size:         f.Size,
			Metadata:     f.Metadata,
		}
		if f.DateTakenUTC != nil {
			info.DateTakenUTC = f.DateTakenUTC.Format("2006-01-02T15:04:05Z")
		}
		output.Files = append(output.Files, info)
	}
	output.Total = len(output.Files)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Found %d file(s) in %s", output.Total, output.FolderPath)},
		},
	}, output, nil
}

// handlePreviewRename handles the preview_rename tool
func (s *Server) handlePreviewRename(ctx context.Context, req *mcp.CallToolRequest, input PreviewRenameInput) (*mcp.CallToolResult, PreviewRenameOutput, error) {
	output := PreviewRenameOutput{Items: []PreviewItem{}}

	preview, err := s.preview(input)
	if err != nil {
		return nil, output, err
	}

	for _, it := range preview.Items {
		item := PreviewItem{
			OriginalName: it.OriginalName,
			NewName:      it.NewName,
			RelativePath: it.RelativePath,
			Status:       planner.Status(it),
		}
		if it.DayNumber != nil {
			item.DayNumber = *it.DayNumber
		}
		output.Items = append(output.Items, item)
	}
	output.Total = preview.Summary.Total
	output.Renames = preview.Summary.Renames
	output.Conflicts = preview.Summary.Conflicts

	var text strings.Builder
	fmt.Fprintf(&text, "%d file(s), %d to rename, %d conflict(s)\n", output.Total, output.Renames, output.Conflicts)
	for _, it := range output.Items {
		fmt.Fprintf(&text, "%s -> %s [%s]\n", it.OriginalName, it.NewName, it.Status)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text.String()},
		},
	}, output, nil
}

// handleExecuteRename handles the execute_rename tool
func (s *Server) handleExecuteRename(ctx context.Context, req *mcp.CallToolRequest, input ExecuteRenameInput) (*mcp.CallToolResult, ExecuteRenameOutput, error) {
	output := ExecuteRenameOutput{Results: []model.RenameResult{}, DryRun: input.DryRun}

	preview, err := s.preview(input.preview())
	if err != nil {
		return nil, output, err
	}

	resp, err := s.svc.Rename(ctx, service.RenameRequest{
		Items:          preview.Items,
		BaseFolderPath: preview.FolderPath,
		DryRun:         input.DryRun,
	}, nil)
	if err != nil {
		return nil, output, err
	}

	output.Results = resp.Results
	output.SuccessCount = resp.SuccessCount
	output.ErrorCount = resp.ErrorCount
	output.Skipped = len(preview.Items) - len(resp.Results)

	verb := "Renamed"
	if input.DryRun {
		verb = "Would rename"
	}
	message := fmt.Sprintf("%s %d file(s), %d failed, %d skipped", verb, output.SuccessCount, output.ErrorCount, output.Skipped)
	logging.Info("mcp rename finished",
		logging.String("folder", preview.FolderPath),
		logging.Int("success", output.SuccessCount),
		logging.Int("failed", output.ErrorCount),
		logging.Bool("dry_run", input.DryRun))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
	}, output, nil
}

// handleGetMetadata handles the get_metadata tool
func (s *Server) handleGetMetadata(ctx context.Context, req *mcp.CallToolRequest, input GetMetadataInput) (*mcp.CallToolResult, GetMetadataOutput, error) {
	output := GetMetadataOutput{FilePath: input.FilePath}

	if input.FilePath == "" {
		return nil, output, fmt.Errorf("file_path is required")
	}

	resp, err := s.svc.Metadata(input.FilePath)
	if err != nil {
		return nil, output, err
	}
	output.FilePath = resp.Path
	output.Values = resp.Values
	output.Timezone = resp.Timezone
	output.DateTakenUTC = resp.DateTakenUTC

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%d metadata value(s) for %s", len(output.Values), output.FilePath)},
		},
	}, output, nil
}

// handleListPatterns handles the list_patterns tool
func (s *Server) handleListPatterns(ctx context.Context, req *mcp.CallToolRequest, input ListPatternsInput) (*mcp.CallToolResult, ListPatternsOutput, error) {
	patterns := s.svc.AllPatterns()
	output := ListPatternsOutput{Patterns: patterns, Total: len(patterns)}

	var text strings.Builder
	for _, p := range patterns {
		fmt.Fprintf(&text, "%s  %s\n", p.Pattern, p.Description)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text.String()},
		},
	}, output, nil
}

// handleAddPattern handles the add_pattern tool
func (s *Server) handleAddPattern(ctx context.Context, req *mcp.CallToolRequest, input AddPatternInput) (*mcp.CallToolResult, PatternOutput, error) {
	output := PatternOutput{Pattern: input.Pattern}

	if err := s.svc.AddPattern(input.Pattern, input.Description); err != nil {
		output.Error = err.Error()
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to add pattern: %v", err)},
			},
		}, output, nil
	}

	output.Success = true
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Added pattern '%s'", input.Pattern)},
		},
	}, output, nil
}

// handleRemovePattern handles the remove_pattern tool
func (s *Server) handleRemovePattern(ctx context.Context, req *mcp.CallToolRequest, input RemovePatternInput) (*mcp.CallToolResult, PatternOutput, error) {
	output := PatternOutput{Pattern: input.Pattern}

	removed, err := s.svc.RemovePattern(input.Pattern)
	if err != nil {
		return nil, output, err
	}
	if !removed {
		output.Error = "pattern not found"
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Pattern '%s' not found", input.Pattern)},
			},
		}, output, nil
	}

	output.Success = true
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Removed pattern '%s'", input.Pattern)},
		},
	}, output, nil
}

// preview turns tool input into a planned rename
func (s *Server) preview(input PreviewRenameInput) (*service.PreviewResponse, error) {
	if input.FolderPath == "" {
		return nil, fmt.Errorf("folder_path is required")
	}
	if input.Pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}

	vacation, err := vacationOptions(input)
	if err != nil {
		return nil, err
	}

	return s.svc.Preview(service.PreviewRequest{
		ScanRequest:  service.ScanRequest{FolderPath: input.FolderPath, Extensions: input.Extensions},
		Pattern:      input.Pattern,
		VacationMode: vacation,
	})
}

func vacationOptions(input PreviewRenameInput) (*model.VacationModeOptions, error) {
	if !input.VacationMode {
		return nil, nil
	}
	opts := &model.VacationModeOptions{
		Enabled:          true,
		DayFolderPattern: input.DayFolderPattern,
		SubfolderPattern: input.SubfolderPattern,
	}
	if input.StartDate != "" {
		d, err := model.ParseDate(input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		opts.StartDate = &d
	}
	return opts, nil
}
