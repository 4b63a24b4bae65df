package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listFilter string
	listLong   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the files of a folder",
	Long: `List the files of a folder recursively, optionally filtered by extension
or by a regex matched against the relative path.

Use --long to show size, modification time, capture time and dimensions.`,
	RunE: runList,
}

func init() {
	addScanFlags(listCmd)
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Regex pattern to filter files by relative path")
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show detailed information")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	req := scanRequest()
	req.Filter = listFilter
	resp, err := svc.Scan(req)
	if err != nil {
		return fmt.Errorf("failed to scan folder: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if resp.TotalCount == 0 {
		fmt.Printf("No files in '%s'\n", resp.FolderPath)
		return nil
	}

	fmt.Printf("Files in '%s' (%d total):\n\n", resp.FolderPath, resp.TotalCount)

	if listLong {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tSIZE\tMODIFIED\tTAKEN (UTC)\tDIMENSIONS\tCAMERA")
		fmt.Fprintln(w, "----\t----\t--------\t-----------\t----------\t------")
		for _, f := range resp.Files {
			taken := "-"
			if f.DateTakenUTC != nil {
				taken = f.DateTakenUTC.Format("2006-01-02 15:04:05")
			}
			dims := "-"
			if f.Metadata["width"] != "" && f.Metadata["height"] != "" {
				dims = f.Metadata["width"] + "x" + f.Metadata["height"]
			}
			camera := f.Metadata["camera_model"]
			if camera == "" {
				camera = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				filepath.Join(f.RelativePath, f.Name),
				formatSize(f.Size),
				f.ModifiedAt.Format("2006-01-02 15:04:05"),
				taken,
				dims,
				camera,
			)
		}
		w.Flush()
	} else {
		for _, f := range resp.Files {
			fmt.Printf("  %s\n", filepath.Join(f.RelativePath, f.Name))
		}
	}

	return nil
}

func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
