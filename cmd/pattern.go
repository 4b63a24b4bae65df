package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/takeshy/reshape/internal/store"
)

var (
	patternDescription string
	patternCustomOnly  bool
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Manage saved rename patterns",
	Long: `List the built-in rename patterns and manage your own.

Custom patterns are stored in patterns.json inside the config directory
(~/.reshape by default).`,
}

var patternListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and saved patterns",
	Args:  cobra.NoArgs,
	RunE:  runPatternList,
}

var patternAddCmd = &cobra.Command{
	Use:   "add <pattern>",
	Short: "Save a custom pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternAdd,
}

var patternRemoveCmd = &cobra.Command{
	Use:   "remove <pattern>",
	Short: "Remove a saved pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatternRemove,
}

func init() {
	patternListCmd.Flags().BoolVar(&patternCustomOnly, "custom", false, "Only show saved patterns")
	patternListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
	patternAddCmd.Flags().StringVarP(&patternDescription, "description", "d", "", "Description shown next to the pattern")

	patternCmd.AddCommand(patternListCmd, patternAddCmd, patternRemoveCmd)
	rootCmd.AddCommand(patternCmd)
}

func runPatternList(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	patterns := svc.AllPatterns()
	if patternCustomOnly {
		patterns = svc.Patterns.List()
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(patterns)
	}

	if len(patterns) == 0 {
		fmt.Println("No saved patterns")
		return nil
	}

	builtIn := len(store.DefaultPatterns())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tDESCRIPTION\tSOURCE")
	fmt.Fprintln(w, "-------\t-----------\t------")
	for i, p := range patterns {
		source := "custom"
		if !patternCustomOnly && i < builtIn {
			source = "built-in"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Pattern, p.Description, source)
	}
	w.Flush()

	return nil
}

func runPatternAdd(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	if err := svc.AddPattern(args[0], patternDescription); err != nil {
		return fmt.Errorf("failed to add pattern: %w", err)
	}
	fmt.Printf("Added pattern '%s'\n", args[0])
	return nil
}

func runPatternRemove(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	removed, err := svc.RemovePattern(args[0])
	if err != nil {
		return fmt.Errorf("failed to remove pattern: %w", err)
	}
	if !removed {
		return fmt.Errorf("pattern '%s' not found", args[0])
	}
	fmt.Printf("Removed pattern '%s'\n", args[0])
	return nil
}
