package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <file>",
	Short: "Show the placeholder values of a file",
	Long: `Print every placeholder value extracted from a single file, along with
the timezone inferred from its GPS position and its capture time in UTC.`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func init() {
	metadataCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	resp, err := svc.Metadata(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	keys := make([]string, 0, len(resp.Values))
	for k := range resp.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("Metadata for '%s':\n\n", resp.Path)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLACEHOLDER\tVALUE")
	fmt.Fprintln(w, "-----------\t-----")
	for _, k := range keys {
		fmt.Fprintf(w, "{%s}\t%s\n", k, resp.Values[k])
	}
	w.Flush()

	if resp.Timezone != "" {
		fmt.Printf("\nTimezone (from GPS): %s\n", resp.Timezone)
	}
	if resp.DateTakenUTC != "" {
		fmt.Printf("Taken (UTC): %s\n", resp.DateTakenUTC)
	}
	return nil
}
