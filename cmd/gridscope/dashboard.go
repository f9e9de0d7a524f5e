package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gridscope/gridscope/internal/api"
	"github.com/gridscope/gridscope/internal/config"
	"github.com/gridscope/gridscope/internal/core"
	"github.com/gridscope/gridscope/internal/tui"
)

func runDashboard(cfg config.Config) {
	client := api.NewClient(cfg.API.BaseURL)
	filters := core.FilterState{
		DeviceID: cfg.Device,
		Metric:   core.ParseMetric(cfg.Metric),
	}

	model := tui.NewModel(client, filters)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := config.Watch(ctx, config.ConfigPath(), func(next config.Config) {
		base := next.API.BaseURL
		if base == "" {
			base = api.DefaultBaseURL
		}
		program.Send(tui.BaseURLChangedMsg{BaseURL: base})
	})
	if err != nil {
		log.Printf("settings hot reload disabled: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}
