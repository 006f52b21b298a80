package commands

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/haivivi/tonegen/pkg/cli"
)

var (
	// Global flags
	cfgFile      string
	contextName  string
	formatOutput string
	queryExpr    string
	verbose      bool

	// Global configuration (loaded at init time)
	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "tonegen",
	Short: "Sine test-tone WAVE generator",
	Long: `tonegen - Render sine test tones to uncompressed PCM WAVE files.

The left (or only) channel plays the base frequency; the right channel plays
the base frequency plus a small difference, which produces an audible beat.

Configuration is stored in ~/.tonegen/config.yaml and supports multiple
contexts, similar to kubectl's context management. A context holds default
tone parameters and an output target (local directory or S3 bucket).

Examples:
  # 30 seconds, 16-bit stereo, 220/222 Hz, to out.wav
  tonegen generate

  # 5 seconds of 8-bit tone with a 3 Hz beat
  tonegen generate -o beat.wav --bits 8 --difference 3 --length 5

  # Write to the bucket configured in the "cloud" context
  tonegen -c cloud generate -o tones/a440.wav --frequency 440

  # Show the header of a file
  tonegen inspect out.wav`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tonegen/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", string(cli.FormatYAML), "output format: yaml, json, table, raw")
	rootCmd.PersistentFlags().StringVarP(&queryExpr, "query", "q", "", "jq expression applied to the output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

// configLoadErr stores the error from LoadConfigWithPath for deferred
// reporting, so commands that do not need config still run.
var configLoadErr error

func initConfig() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	globalConfig, configLoadErr = cli.LoadConfigWithPath(cfgFile)
}

// getConfig returns the global configuration.
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// getContext returns the -c context, the current context, or nil when
// neither is set.
func getContext() (*cli.Context, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	return cfg.ResolveContext(contextName)
}

// tableCells formats sizes and timings in table output.
var tableCells = map[string]cli.CellFunc{
	"data_bytes":      cli.BytesCell,
	"file_bytes":      cli.BytesCell,
	"elapsed_seconds": cli.SecondsCell,
	"elapsed":         cli.NanosecondsCell,
}

// outputResult writes result in the --format/--query selected form.
// columns orders the table view of lists.
func outputResult(result any, columns ...string) error {
	format := cli.OutputFormat(formatOutput)
	if !slices.Contains(cli.OutputFormats, format) {
		return fmt.Errorf("unsupported output format %q (want yaml, json, table or raw)", formatOutput)
	}
	return cli.Output(result, cli.OutputOptions{
		Format:  format,
		Query:   queryExpr,
		Columns: columns,
		Cells:   tableCells,
	})
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
