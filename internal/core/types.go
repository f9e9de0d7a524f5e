package core

import (
	"strconv"
	"strings"
	"time"
)

// Metric identifies one of the known telemetry metrics a device reports.
type Metric string

const (
	MetricPower       Metric = "power"
	MetricVoltage     Metric = "voltage"
	MetricCurrent     Metric = "current"
	MetricFrequency   Metric = "frequency"
	MetricTemperature Metric = "temperature"
)

var KnownMetrics = []Metric{
	MetricPower,
	MetricVoltage,
	MetricCurrent,
	MetricFrequency,
	MetricTemperature,
}

// Unit returns the display unit for the metric.
func (m Metric) Unit() string {
	switch m {
	case MetricPower:
		return "W"
	case MetricVoltage:
		return "V"
	case MetricCurrent:
		return "A"
	case MetricFrequency:
		return "Hz"
	case MetricTemperature:
		return "°C"
	default:
		return ""
	}
}

func ParseMetric(s string) Metric {
	for _, m := range KnownMetrics {
		if string(m) == s {
			return m
		}
	}
	return MetricPower
}

// NextMetric returns the next metric in the cycle.
func NextMetric(current Metric) Metric {
	for i, m := range KnownMetrics {
		if m == current {
			return KnownMetrics[(i+1)%len(KnownMetrics)]
		}
	}
	return KnownMetrics[0]
}

// LatestReading is the most recent value a device reported for one metric.
type LatestReading struct {
	Metric string    `json:"metric"`
	Time   time.Time `json:"time"`
	Value  float64   `json:"value"`
}

// SeriesPoint is one sample in a metric's time series. Points are kept in
// the order the API returned them.
type SeriesPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// KWh is a kilowatt-hour quantity with lenient JSON decoding: numbers and
// numeric strings decode normally, anything else decodes to zero.
type KWh float64

func (k *KWh) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*k = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*k = 0
		return nil
	}
	*k = KWh(v)
	return nil
}

// DailyUsage is one row of the daily-aggregated usage report. Day is a
// calendar date (YYYY-MM-DD) with no time-of-day component. Duplicate days
// from the API are passed through as-is.
type DailyUsage struct {
	Day      string `json:"day"`
	UsageKWh KWh    `json:"usage_kwh"`
}

// FilterState is the user's current device and metric selection. Values are
// immutable; every change produces a new FilterState.
type FilterState struct {
	DeviceID string
	Metric   Metric
}

func (f FilterState) WithDevice(id string) FilterState {
	f.DeviceID = id
	return f
}

func (f FilterState) WithMetric(m Metric) FilterState {
	f.Metric = m
	return f
}
