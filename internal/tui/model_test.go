package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gridscope/gridscope/internal/api"
	"github.com/gridscope/gridscope/internal/core"
)

func newTestModel() Model {
	// The port is never dialed: tests drive Update with result messages
	// directly instead of running the returned commands.
	client := api.NewClient("http://127.0.0.1:1")
	return NewModel(client, core.FilterState{DeviceID: "meter-1", Metric: core.MetricPower})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestSyncRequestStartsAllThreeSources(t *testing.T) {
	m := newTestModel()

	m, cmd := update(t, m, syncRequestMsg{})
	if cmd == nil {
		t.Fatal("expected fetch commands")
	}
	if !m.latest.Loading() || !m.series.Loading() || !m.daily.Loading() {
		t.Fatal("all sources should be loading synchronously with the sync request")
	}
	if m.latest.Generation != 1 || m.series.Generation != 1 || m.daily.Generation != 1 {
		t.Fatalf("generations = %d/%d/%d, want 1/1/1",
			m.latest.Generation, m.series.Generation, m.daily.Generation)
	}
}

func TestMetricChangeMidFlightDiscardsOldSeriesResponse(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})
	genOld := m.series.Generation

	// User switches metric while the power series request is in flight.
	m, cmd := update(t, m, key("m"))
	if cmd == nil {
		t.Fatal("metric change should issue a new series fetch")
	}
	if m.filters.Metric != core.MetricVoltage {
		t.Fatalf("metric = %q, want voltage", m.filters.Metric)
	}
	genNew := m.series.Generation
	if genNew == genOld {
		t.Fatal("metric change did not start a new series generation")
	}

	// The new metric's response lands first.
	voltage := []core.SeriesPoint{{Value: 231.0}}
	m, _ = update(t, m, seriesResultMsg{gen: genNew, points: voltage})

	// Then the superseded power response arrives late. It must not win.
	m, _ = update(t, m, seriesResultMsg{gen: genOld, points: []core.SeriesPoint{{Value: 1450}}})

	if len(m.series.Data) != 1 || m.series.Data[0].Value != 231.0 {
		t.Fatalf("series data = %v, want the new metric's points", m.series.Data)
	}
	if m.series.Status != core.FetchSuccess {
		t.Fatalf("series status = %q, want success", m.series.Status)
	}
}

func TestMetricChangeLeavesLatestAndDailyAlone(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})
	m, _ = update(t, m, latestResultMsg{gen: 1, readings: []core.LatestReading{{Metric: "power", Value: 9}}})
	m, _ = update(t, m, dailyResultMsg{gen: 1, rows: []core.DailyUsage{{Day: "2026-08-23", UsageKWh: 4}}})

	m, _ = update(t, m, key("tab"))

	if m.latest.Generation != 1 || m.daily.Generation != 1 {
		t.Fatal("metric change must not invalidate the latest or daily sources")
	}
	if m.latest.Status != core.FetchSuccess || m.daily.Status != core.FetchSuccess {
		t.Fatal("latest/daily state disturbed by a series-only change")
	}
}

func TestSourceErrorIsIsolated(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})

	m, _ = update(t, m, latestResultMsg{gen: 1, err: errors.New("HTTP 500 Internal Server Error: db down")})

	if m.latest.Status != core.FetchError {
		t.Fatalf("latest status = %q, want error", m.latest.Status)
	}
	if !strings.Contains(m.latest.ErrMessage, "500") || !strings.Contains(m.latest.ErrMessage, "db down") {
		t.Fatalf("latest error = %q, want status and body detail", m.latest.ErrMessage)
	}
	if !m.series.Loading() || !m.daily.Loading() {
		t.Fatal("other sources must be unaffected by a latest-source failure")
	}
	if m.series.ErrMessage != "" || m.daily.ErrMessage != "" {
		t.Fatal("error leaked across sources")
	}
}

func TestDeviceChangeResyncsEverything(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})

	m, _ = update(t, m, key("d"))
	if !m.editingDevice {
		t.Fatal("d should enter device editing")
	}
	for range m.deviceInput {
		m, _ = update(t, m, key("backspace"))
	}
	for _, r := range "meter-2" {
		m, _ = update(t, m, key(string(r)))
	}
	m, cmd := update(t, m, key("enter"))

	if m.filters.DeviceID != "meter-2" {
		t.Fatalf("device = %q, want meter-2", m.filters.DeviceID)
	}
	if cmd == nil {
		t.Fatal("device change should issue fetches")
	}
	if m.latest.Generation != 2 || m.series.Generation != 2 || m.daily.Generation != 2 {
		t.Fatalf("generations = %d/%d/%d, want 2/2/2",
			m.latest.Generation, m.series.Generation, m.daily.Generation)
	}
}

func TestDeviceEditUnchangedValueIsNoop(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})

	m, _ = update(t, m, key("d"))
	m, cmd := update(t, m, key("enter"))

	if cmd != nil {
		t.Fatal("committing an unchanged device id should not refetch")
	}
	if m.latest.Generation != 1 {
		t.Fatalf("generation = %d, want 1", m.latest.Generation)
	}
}

func TestBaseURLChangeRebuildsClientAndResyncs(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})

	m, cmd := update(t, m, BaseURLChangedMsg{BaseURL: "http://grid.local:9000"})
	if m.client.BaseURL() != "http://grid.local:9000" {
		t.Fatalf("base URL = %q", m.client.BaseURL())
	}
	if cmd == nil {
		t.Fatal("base URL change should refetch all sources")
	}
	if m.series.Generation != 2 {
		t.Fatalf("series generation = %d, want 2", m.series.Generation)
	}

	// Same URL again is a no-op.
	m, cmd = update(t, m, BaseURLChangedMsg{BaseURL: "http://grid.local:9000"})
	if cmd != nil {
		t.Fatal("unchanged base URL should not refetch")
	}
	if m.series.Generation != 2 {
		t.Fatalf("series generation = %d after no-op, want 2", m.series.Generation)
	}
}

func TestStaleErrorDoesNotClobberNewData(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, syncRequestMsg{})
	genOld := m.daily.Generation

	m, _ = update(t, m, key("r"))
	genNew := m.daily.Generation

	m, _ = update(t, m, dailyResultMsg{gen: genNew, rows: []core.DailyUsage{{Day: "2026-08-24", UsageKWh: 7}}})
	m, _ = update(t, m, dailyResultMsg{gen: genOld, err: errors.New("HTTP 502 Bad Gateway")})

	if m.daily.Status != core.FetchSuccess {
		t.Fatalf("daily status = %q, stale error was applied", m.daily.Status)
	}
	if m.daily.ErrMessage != "" {
		t.Fatalf("daily error = %q, want none", m.daily.ErrMessage)
	}
}
