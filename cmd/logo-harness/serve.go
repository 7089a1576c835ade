package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/turtlekit/logo-harness/internal/api"
)

var (
	// Server flags
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered output files over HTTP",
	Long: `Serve exposes the output directory over HTTP so the most recent
output.png and output.svg can be inspected in a browser. A health endpoint
is available at /api/v1/health and the file list at /api/v1/outputs.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		// Override config values with flags if provided
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serverHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("Serving render outputs from %s on %s...\n", cfg.Output.Dir, addr)
		return api.NewServer(cfg.Output.Dir).Start(addr)
	},
}

func init() {
	// Server flags; PreRun applies them over the loaded config
	serveCmd.Flags().StringVarP(&serverHost, "host", "H", "", "Server host (default: 0.0.0.0)")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port (default: 8080)")
}
