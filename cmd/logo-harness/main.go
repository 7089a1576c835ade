package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/turtlekit/logo-harness/internal/config"
	"github.com/turtlekit/logo-harness/internal/logger"
)

var (
	configPath string
	debug      bool
)

var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "logo-harness",
	Short: "logo-harness - An acceptance harness for the Logo renderer",
	Long: `logo-harness drives the external Logo renderer against test fixtures:
it resolves a fixture by prefix, renders it to raster and vector output at a
fixed canvas size, and reports each invocation's captured output and exit
status.`,
	SilenceErrors: true, // We'll handle error printing ourselves
	SilenceUsage:  true, // We'll handle usage printing ourselves
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		// Load configuration from file or environment variable
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		// flags override config due to highest precedence
		if debug {
			cfg.Debug = true
		}

		// Initialize logger
		logger.Init(cfg)

		// Print configuration source
		if configPath != "" || os.Getenv(config.LogoHarnessConfigPathEnvVar) != "" {
			logger.Debug().Msgf("Using config file: %s", configPath)
		} else {
			logger.Debug().Msg("Using default configuration")
		}

		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: config.yml in current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging and additional debug information")

	// Add run command to root command
	rootCmd.AddCommand(runCmd)

	// Add serve command
	rootCmd.AddCommand(serveCmd)

	// Add cobra completion command
	rootCmd.AddCommand(completionCmd)

	// Add version command to root command
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if code := execute(); code != 0 {
		os.Exit(code)
	}
}

// execute runs the root command exactly once. ExecuteC returns the command
// that actually ran, so the failure path can print its usage without
// re-running it; a failing run already carries renderer side effects that
// must not be repeated.
func execute() int {
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		// Show usage first
		fmt.Println(cmd.UsageString())
		// Then show the error
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
