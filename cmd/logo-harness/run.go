package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/turtlekit/logo-harness/internal/harness"
)

var (
	runOutputFormat string
	runFixturesDir  string
	runOutDir       string
	runWidth        int
	runHeight       int
	runDryRun       bool
)

var runCmd = &cobra.Command{
	Use:   "run <prefix>",
	Short: "Render the fixture matching the prefix and report the results",
	Long: `Run resolves the fixture file whose name starts with the given prefix,
invokes the renderer twice against it (raster output first, then vector),
and reports both invocations' captured stdout, stderr and exit status.

The command exits non-zero when either invocation reports a failure, so a
test runner can consume the exit status directly.

Examples:
  # Render the fixture starting with "01" (e.g. logo_examples/01_square.logo)
  logo-harness run 01

  # Render into a scratch directory at a larger canvas
  logo-harness run 01 --out-dir /tmp/renders --width 800 --height 600

  # Resolve the fixture without invoking the renderer
  logo-harness run 01 --dry-run

  # Machine-readable report
  logo-harness run 01 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]

		opts := harness.OptionsFromConfig(cfg)
		opts.Version = version
		opts.OutputFormat = runOutputFormat

		// flags override config due to highest precedence
		if cmd.Flags().Changed("fixtures") {
			opts.FixturesDir = runFixturesDir
		}
		if cmd.Flags().Changed("out-dir") {
			opts.OutputDir = runOutDir
		}
		if cmd.Flags().Changed("width") {
			opts.Width = runWidth
		}
		if cmd.Flags().Changed("height") {
			opts.Height = runHeight
		}

		h := harness.New(opts)

		if runDryRun {
			source, err := h.Resolve(prefix)
			if err != nil {
				return err
			}
			fmt.Println(source)
			return nil
		}

		result, err := h.Run(cmd.Context(), prefix)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		fmt.Print(result.OutputFormatted)

		if !result.Success {
			return fmt.Errorf("renderer reported failure for %s (raster exit %d, vector exit %d)",
				result.Fixture, result.Raster.ExitCode, result.Vector.ExitCode)
		}
		return nil
	},
}

func init() {

	// Add flags specific to run command
	flags := runCmd.Flags()
	flags.StringVarP(&runOutputFormat, "output", "o", "plain", "output format (plain, table, json, yaml)")
	flags.StringVar(&runFixturesDir, "fixtures", "", "directory searched for fixtures (default: logo_examples)")
	flags.StringVar(&runOutDir, "out-dir", "", "directory the renderer writes images into (default: current directory)")
	flags.IntVar(&runWidth, "width", 0, "canvas width in pixels (default: 200)")
	flags.IntVar(&runHeight, "height", 0, "canvas height in pixels (default: 200)")
	flags.BoolVar(&runDryRun, "dry-run", false, "resolve and print the fixture path without invoking the renderer")
}
