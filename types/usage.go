package types

import "time"

type QuotaDetail struct {
	Limit       int64   `json:"limit"`
	Used        int64   `json:"used"`
	Remaining   int64   `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`
}

// Percent returns the used share in [0,100], computing it when the
// service omitted percentUsed.
func (q QuotaDetail) Percent() float64 {
	if q.PercentUsed > 0 || q.Limit <= 0 {
		return q.PercentUsed
	}
	return float64(q.Used) / float64(q.Limit) * 100
}

type Period struct {
	Start              time.Time `json:"periodStart"`
	End                time.Time `json:"periodEnd"`
	ScreenshotsCount   int64     `json:"screenshotsCount"`
	BandwidthBytes     int64     `json:"bandwidthBytes"`
	BandwidthFormatted string    `json:"bandwidthFormatted,omitempty"`
}

type Totals struct {
	ScreenshotsCount   int64  `json:"screenshotsCount"`
	BandwidthBytes     int64  `json:"bandwidthBytes"`
	BandwidthFormatted string `json:"bandwidthFormatted,omitempty"`
}

type Quota struct {
	Screenshots QuotaDetail `json:"screenshots"`
	Bandwidth   QuotaDetail `json:"bandwidth"`
}

// Usage is the account usage document.
type Usage struct {
	Tier          string   `json:"tier"`
	CurrentPeriod Period   `json:"currentPeriod"`
	Quota         Quota    `json:"quota"`
	Totals        Totals   `json:"totals"`
	History       []Period `json:"history,omitempty"`
}

// UsageSnapshot is the minimal view: captures used, captures allowed and
// when the counter resets.
type UsageSnapshot struct {
	Used      int64     `json:"used"`
	Quota     int64     `json:"quota"`
	ResetDate time.Time `json:"resetDate"`
}

func (u *Usage) Snapshot() UsageSnapshot {
	return UsageSnapshot{
		Used:      u.Quota.Screenshots.Used,
		Quota:     u.Quota.Screenshots.Limit,
		ResetDate: u.CurrentPeriod.End,
	}
}

// QuotaStatus is the lighter quota-only document.
type QuotaStatus struct {
	Tier        string      `json:"tier"`
	Screenshots QuotaDetail `json:"screenshots"`
	Bandwidth   QuotaDetail `json:"bandwidth"`
	PeriodEnds  time.Time   `json:"periodEnds"`
}
