package core

import "time"

// Request descriptors map the current filter state (plus a cycle anchor for
// the windowed sources) to one fetch's parameters. Deriving them is pure;
// issuing them is the client's job.

type LatestRequest struct {
	DeviceID string
}

type SeriesRequest struct {
	DeviceID string
	Metric   Metric
	From     time.Time
	To       time.Time
}

type DailyRequest struct {
	DeviceID string
	From     string // YYYY-MM-DD
	To       string // YYYY-MM-DD
}

func DeriveLatestRequest(f FilterState) LatestRequest {
	return LatestRequest{DeviceID: f.DeviceID}
}

func DeriveSeriesRequest(f FilterState, anchor time.Time) SeriesRequest {
	from, to := SeriesWindow(anchor)
	return SeriesRequest{
		DeviceID: f.DeviceID,
		Metric:   f.Metric,
		From:     from,
		To:       to,
	}
}

func DeriveDailyRequest(f FilterState, anchor time.Time) DailyRequest {
	from, to := DailyWindow(anchor)
	return DailyRequest{
		DeviceID: f.DeviceID,
		From:     from,
		To:       to,
	}
}
