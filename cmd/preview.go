package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show what a rename pattern would do",
	Long: `Plan a batch rename and print the result without touching any file.

Placeholders:
  {filename} {ext} {size} {year} {month} {day}
  {created} {created_time} {modified} {modified_time}
  {date_taken} {time_taken} {camera_make} {camera_model}
  {width} {height} {gps_lat} {gps_lon}
  {counter} or {counter:N}   sequence number padded to N digits (default 3)

Vacation mode (--vacation) also provides {day_number}, {day_counter} and
{global_counter}.

Examples:
  reshape preview -p ~/Photos -P "{year}-{month}-{day}_{filename}"
  reshape preview -p ~/Trip -e jpg -P "{time_taken}_{day_counter}" --vacation`,
	RunE: runPreview,
}

func init() {
	addPlanFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	req, err := previewRequest()
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	resp, err := svc.Preview(req)
	if err != nil {
		return fmt.Errorf("failed to plan rename: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(resp.Items) == 0 {
		fmt.Printf("No files in '%s'\n", resp.FolderPath)
		return nil
	}

	fmt.Printf("Rename preview for '%s':\n\n", resp.FolderPath)
	printPreview(resp.Items, req.VacationMode != nil)
	printSummary(resp.Summary)
	return nil
}
