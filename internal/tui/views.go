package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/gridscope/gridscope/internal/core"
	"github.com/samber/lo"
)

const (
	leftPanelWidth = 38
	minBodyWidth   = 60
)

func (m Model) View() string {
	if m.width == 0 {
		return "starting…"
	}
	return strings.Join([]string{
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	}, "\n")
}

func (m Model) renderHeader() string {
	brand := brandStyle.Render("⚡ gridscope")

	deviceChip := chipStyle.Render("device: " + m.filters.DeviceID)
	if m.editingDevice {
		deviceChip = chipEditStyle.Render("device: " + m.deviceInput + "▏")
	}
	metricChip := chipStyle.Render("metric: " + string(m.filters.Metric))

	spinner := ""
	if m.anyLoading() {
		frame := m.animFrame % len(spinnerFrames)
		spinner = " " + loadingStyle.Render(spinnerFrames[frame])
	}

	base := dimStyle.Render("  " + m.client.BaseURL())

	return brand + "  " + deviceChip + " " + metricChip + spinner + base
}

func (m Model) renderBody() string {
	width := m.width
	if width < minBodyWidth {
		width = minBodyWidth
	}
	rightWidth := width - leftPanelWidth - 2

	left := panelStyle.Width(leftPanelWidth).Render(m.renderLatest())
	right := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(rightWidth).Render(m.renderSeries(rightWidth-4)),
		panelStyle.Width(rightWidth).Render(m.renderDaily()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderLatest() string {
	lines := []string{sectionStyle.Render("Latest readings")}

	byMetric := core.LatestByMetric(m.latest.Data)
	for _, metric := range core.KnownMetrics {
		label := labelStyle.Render(fmt.Sprintf("%-12s", string(metric)))
		reading, ok := byMetric[string(metric)]
		if !ok {
			lines = append(lines, label+dimStyle.Render("—"))
			continue
		}
		value := valueStyle.Render(fmt.Sprintf("%9.1f %-3s", reading.Value, metric.Unit()))
		at := dimStyle.Render(" " + reading.Time.Local().Format("15:04:05"))
		lines = append(lines, label+value+at)
	}

	lines = append(lines, "", m.sourceStatus("latest", m.latest.Status, m.latest.ErrMessage))
	return strings.Join(lines, "\n")
}

func (m Model) renderSeries(chartWidth int) string {
	title := sectionStyle.Render(fmt.Sprintf("%s (%s) · last 24h", m.filters.Metric, m.filters.Metric.Unit()))
	lines := []string{title}

	if len(m.series.Data) == 0 {
		lines = append(lines, dimStyle.Render("no samples in window"))
	} else {
		values := lo.Map(m.series.Data, func(p core.SeriesPoint, _ int) float64 {
			return p.Value
		})

		if chartWidth < 10 {
			chartWidth = 10
		}
		chart := sparkline.New(chartWidth, 6, sparkline.WithStyle(sparkStyle))
		chart.PushAll(values)
		chart.Draw()
		lines = append(lines, chart.View())

		stats := fmt.Sprintf("min %.1f · max %.1f · last %.1f",
			lo.Min(values), lo.Max(values), values[len(values)-1])
		lines = append(lines, labelStyle.Render(stats))
	}

	lines = append(lines, "", m.sourceStatus("series", m.series.Status, m.series.ErrMessage))
	return strings.Join(lines, "\n")
}

func (m Model) renderDaily() string {
	lines := []string{sectionStyle.Render("Daily usage · last 30 days")}

	rows := m.daily.Data
	tail := rows
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	if len(tail) == 0 {
		lines = append(lines, dimStyle.Render("no usage reported"))
	}
	for _, row := range tail {
		lines = append(lines, labelStyle.Render(row.Day+"  ")+
			valueStyle.Render(fmt.Sprintf("%7.1f kWh", float64(row.UsageKWh))))
	}

	total := core.TotalUsage(rows)
	lines = append(lines, "", titleStyle.Render(fmt.Sprintf("total %.1f kWh", total)))
	lines = append(lines, m.sourceStatus("daily", m.daily.Status, m.daily.ErrMessage))
	return strings.Join(lines, "\n")
}

// sourceStatus renders one source's fetch state. Errors stay local to their
// source; nothing here looks at the other two.
func (m Model) sourceStatus(name string, status core.FetchStatus, errMsg string) string {
	label := dimStyle.Render(name + " ")
	switch status {
	case core.FetchLoading:
		frame := m.animFrame % len(spinnerFrames)
		return label + loadingStyle.Render(spinnerFrames[frame]+" fetching")
	case core.FetchSuccess:
		return label + okStyle.Render("● up to date")
	case core.FetchError:
		return label + errStyle.Render("✗ "+truncate(errMsg, 60))
	default:
		return label + dimStyle.Render("○ idle")
	}
}

func (m Model) renderFooter() string {
	if m.showHelp {
		return helpStyle.Render("  ") +
			helpKeyStyle.Render("d") + helpStyle.Render(" edit device · ") +
			helpKeyStyle.Render("m/tab") + helpStyle.Render(" cycle metric · ") +
			helpKeyStyle.Render("r") + helpStyle.Render(" refresh · ") +
			helpKeyStyle.Render("?") + helpStyle.Render(" close help · ") +
			helpKeyStyle.Render("q") + helpStyle.Render(" quit")
	}
	return helpStyle.Render("  press ? for help")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
