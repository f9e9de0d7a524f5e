package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gridscope/gridscope/internal/api"
	"github.com/gridscope/gridscope/internal/core"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchTimeout bounds a single request so a hung connection cannot leave a
// source loading forever. A timed-out request surfaces as that source's
// error, like any other transport failure.
const fetchTimeout = 30 * time.Second

type syncRequestMsg struct{}

// BaseURLChangedMsg is sent into the program when the settings file changes
// out from under a running dashboard. A changed base URL starts a new
// generation for every source.
type BaseURLChangedMsg struct {
	BaseURL string
}

// One result message type per source, each stamped with the generation of
// the request that produced it. Update applies them through the fetch
// cycle's staleness check, so a response from a superseded request can
// never overwrite newer state.
type latestResultMsg struct {
	gen      int
	readings []core.LatestReading
	err      error
}

type seriesResultMsg struct {
	gen    int
	points []core.SeriesPoint
	err    error
}

type dailyResultMsg struct {
	gen  int
	rows []core.DailyUsage
	err  error
}

type Model struct {
	client  *api.Client
	filters core.FilterState

	latest core.FetchCycle[core.LatestReading]
	series core.FetchCycle[core.SeriesPoint]
	daily  core.FetchCycle[core.DailyUsage]

	width  int
	height int

	animFrame int
	showHelp  bool

	editingDevice bool
	deviceInput   string
}

func NewModel(client *api.Client, filters core.FilterState) Model {
	return Model{
		client:  client,
		filters: filters,
		latest:  core.NewFetchCycle[core.LatestReading](),
		series:  core.NewFetchCycle[core.SeriesPoint](),
		daily:   core.NewFetchCycle[core.DailyUsage](),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), func() tea.Msg { return syncRequestMsg{} })
}

// syncLatest starts a new fetch cycle for the latest-readings source. The
// cycle moves to loading here, synchronously with the triggering change;
// the network call happens later on the command goroutine.
func (m *Model) syncLatest() tea.Cmd {
	gen := m.latest.Begin()
	client := m.client
	req := core.DeriveLatestRequest(m.filters)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		readings, err := client.Latest(ctx, req)
		return latestResultMsg{gen: gen, readings: readings, err: err}
	}
}

func (m *Model) syncSeries() tea.Cmd {
	gen := m.series.Begin()
	client := m.client
	// Anchor "now" once, at cycle start, so from and to agree.
	req := core.DeriveSeriesRequest(m.filters, time.Now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		points, err := client.Series(ctx, req)
		return seriesResultMsg{gen: gen, points: points, err: err}
	}
}

func (m *Model) syncDaily() tea.Cmd {
	gen := m.daily.Begin()
	client := m.client
	req := core.DeriveDailyRequest(m.filters, time.Now())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		rows, err := client.DailyUsage(ctx, req)
		return dailyResultMsg{gen: gen, rows: rows, err: err}
	}
}

func (m *Model) syncAll() tea.Cmd {
	return tea.Batch(m.syncLatest(), m.syncSeries(), m.syncDaily())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.animFrame++
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case syncRequestMsg:
		return m, m.syncAll()

	case BaseURLChangedMsg:
		if msg.BaseURL == m.client.BaseURL() {
			return m, nil
		}
		m.client = api.NewClient(msg.BaseURL)
		return m, m.syncAll()

	case latestResultMsg:
		if msg.err != nil {
			m.latest.Fail(msg.gen, msg.err.Error())
		} else {
			m.latest.Resolve(msg.gen, msg.readings)
		}
		return m, nil

	case seriesResultMsg:
		if msg.err != nil {
			m.series.Fail(msg.gen, msg.err.Error())
		} else {
			m.series.Resolve(msg.gen, msg.points)
		}
		return m, nil

	case dailyResultMsg:
		if msg.err != nil {
			m.daily.Fail(msg.gen, msg.err.Error())
		} else {
			m.daily.Resolve(msg.gen, msg.rows)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingDevice {
		switch msg.String() {
		case "enter":
			m.editingDevice = false
			id := strings.TrimSpace(m.deviceInput)
			if id == "" || id == m.filters.DeviceID {
				return m, nil
			}
			// Device id parameterizes all three sources.
			m.filters = m.filters.WithDevice(id)
			return m, m.syncAll()
		case "esc":
			m.editingDevice = false
			return m, nil
		case "backspace":
			if len(m.deviceInput) > 0 {
				m.deviceInput = m.deviceInput[:len(m.deviceInput)-1]
			}
			return m, nil
		default:
			if msg.Type == tea.KeyRunes {
				m.deviceInput += string(msg.Runes)
			}
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "d":
		m.editingDevice = true
		m.deviceInput = m.filters.DeviceID
		return m, nil

	case "m", "tab":
		// Metric parameterizes the series source only; latest and daily
		// keep their current cycles.
		m.filters = m.filters.WithMetric(core.NextMetric(m.filters.Metric))
		return m, m.syncSeries()

	case "r":
		return m, m.syncAll()

	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

func (m Model) anyLoading() bool {
	return m.latest.Loading() || m.series.Loading() || m.daily.Loading()
}
