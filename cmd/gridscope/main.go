package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gridscope/gridscope/internal/config"
	"github.com/gridscope/gridscope/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if os.Getenv("GRIDSCOPE_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	var (
		baseURL string
		device  string
	)

	root := cobra.Command{
		Use:     "gridscope",
		Short:   "Gridscope is a terminal dashboard for live power telemetry.",
		Version: version.String(),
		Run: func(_ *cobra.Command, _ []string) {
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if device != "" {
				cfg.Device = device
			}
			runDashboard(cfg)
		},
	}
	root.Flags().StringVar(&baseURL, "base-url", "", "telemetry API base URL (overrides config and env)")
	root.Flags().StringVar(&device, "device", "", "initial device id")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
