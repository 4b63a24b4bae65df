package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/takeshy/reshape/internal/model"
	"github.com/takeshy/reshape/internal/service"
)

var (
	renameDryRun bool
	renameYes    bool
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename files from a pattern",
	Long: `Plan a batch rename, show the preview and apply it after confirmation.

Files whose new name collides with another planned name or an existing file
are skipped, as are files whose name would not change. Existing files are
never overwritten. A failure on one file does not stop the others.

Use --dry-run to run every check without renaming anything.`,
	RunE: runRename,
}

func init() {
	addPlanFlags(renameCmd)
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Show what would be renamed without actually renaming")
	renameCmd.Flags().BoolVarP(&renameYes, "yes", "y", false, "Rename without confirmation")
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	req, err := previewRequest()
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	preview, err := svc.Preview(req)
	if err != nil {
		return fmt.Errorf("failed to plan rename: %w", err)
	}

	if !jsonOutput {
		if len(preview.Items) == 0 {
			fmt.Printf("No files in '%s'\n", preview.FolderPath)
			return nil
		}
		printPreview(preview.Items, req.VacationMode != nil)
		printSummary(preview.Summary)
	}

	if preview.Summary.Renames == 0 {
		if !jsonOutput {
			fmt.Println("\nNothing to rename")
		}
		return nil
	}

	// Confirm rename
	if !renameDryRun && !renameYes {
		if noInteractive {
			return fmt.Errorf("refusing to rename without confirmation: pass --yes")
		}
		if !confirm(fmt.Sprintf("Rename %d files?", preview.Summary.Renames)) {
			fmt.Println("Rename cancelled")
			return nil
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var bar *progressbar.ProgressBar
	if !renameDryRun && !jsonOutput {
		bar = progressbar.Default(int64(preview.Summary.Renames), "Renaming")
	}

	resp, err := svc.Rename(ctx, service.RenameRequest{
		Items:          preview.Items,
		BaseFolderPath: preview.FolderPath,
		DryRun:         renameDryRun,
	}, func(model.RenameResult) {
		if bar != nil {
			_ = bar.Add(1)
		}
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil && resp == nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(resp); encErr != nil {
			return encErr
		}
	} else {
		printResults(resp)
	}

	if err != nil {
		return err
	}
	if resp.SuccessCount == 0 && resp.ErrorCount > 0 {
		return fmt.Errorf("all %d renames failed", resp.ErrorCount)
	}
	return nil
}

func printResults(resp *service.RenameResponse) {
	verb := "Renamed"
	if resp.DryRun {
		verb = "Would rename"
		fmt.Println("\n[Dry run] No files were changed")
	}

	fmt.Println()
	for _, r := range resp.Results {
		if r.Success {
			fmt.Printf("  ✓ %s -> %s\n", r.OriginalPath, r.NewPath)
		}
	}
	for _, r := range resp.Results {
		if !r.Success {
			fmt.Fprintf(os.Stderr, "  ✗ %s: %s\n", r.OriginalPath, r.Error)
		}
	}

	fmt.Printf("\n%s %d files", verb, resp.SuccessCount)
	if resp.ErrorCount > 0 {
		fmt.Printf(", %d failed", resp.ErrorCount)
	}
	fmt.Println()
}
