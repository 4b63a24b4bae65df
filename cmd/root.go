package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/metadata"
	"github.com/takeshy/reshape/internal/service"
	"github.com/takeshy/reshape/internal/store"
)

var (
	Version       = "dev"
	configDir     string
	noInteractive bool
	logLevel      string
	logFormat     string
)

var rootCmd = &cobra.Command{
	Use:     "reshape",
	Short:   "Batch rename files from their metadata",
	Version: Version,
	Long: `reshape renames files in bulk using placeholders filled from file metadata
such as EXIF capture date, camera model, dimensions and filesystem timestamps.

Patterns look like "{year}-{month}-{day}_{filename}" or "IMG_{counter:4}".
Vacation mode groups photos into day folders ("Day 1", "Day 2", ...) by
capture date.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultConfigDir := os.Getenv("RESHAPE_CONFIG_DIR")
	defaultLogLevel := "warn"
	if envLevel := os.Getenv("RESHAPE_LOG_LEVEL"); envLevel != "" {
		defaultLogLevel = envLevel
	}
	defaultNoInteractive, _ := strconv.ParseBool(os.Getenv("RESHAPE_NO_INTERACTIVE"))

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", defaultConfigDir, "Directory holding patterns.json (default: ~/.reshape, or set RESHAPE_CONFIG_DIR env var)")
	rootCmd.PersistentFlags().BoolVar(&noInteractive, "no-interactive", defaultNoInteractive, "Never prompt for confirmation (or set RESHAPE_NO_INTERACTIVE env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn, error (or set RESHAPE_LOG_LEVEL env var)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console or json (default: console, json for serve)")
}

func initLogging(cmd *cobra.Command) error {
	format, level := logFormat, logLevel
	if format == "" {
		format = "console"
	}
	// The API server logs requests as JSON at info level unless told otherwise.
	if cmd.Name() == "serve" {
		if logFormat == "" {
			format = "json"
		}
		if !cmd.Flags().Changed("log-level") && os.Getenv("RESHAPE_LOG_LEVEL") == "" {
			level = "info"
		}
	}
	if err := logging.Init(logging.Config{Level: level, Format: format}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// newService wires the pattern store and metadata provider.
func newService() (*service.Service, error) {
	patterns, err := store.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pattern store: %w", err)
	}
	return service.New(patterns, metadata.NewProvider()), nil
}

// confirm asks a yes/no question on stdin. It returns false without asking
// when prompts are disabled.
func confirm(question string) bool {
	if noInteractive {
		return false
	}
	fmt.Printf("\n%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
