// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scoring

import "time"

// Engagement and churn levels. A level is always a pure function of the
// numeric score, never stored independently of it.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// DefaultDaysSinceInteraction is assumed when a client has no recorded
// activity at all.
const DefaultDaysSinceInteraction = 365

// NeutralRatePct is the neutral prior used for response and completion
// rates when there is no data to compute one from.
const NeutralRatePct = 50.0

// ClientActivitySummary is derived from a client's time-ordered activity
// log: days since the most recent activity relative to evaluation time,
// and the number of meetings in the trailing 90 days.
type ClientActivitySummary struct {
	DaysSinceLastInteraction int `json:"days_since_last_interaction"`
	MeetingsLast90Days       int `json:"meetings_last_90_days"`
}

// CommunicationStats counts outbound campaign communications per client.
type CommunicationStats struct {
	TotalSent   int `json:"total_sent"`
	TotalOpened int `json:"total_opened"`
}

// ResponseRatePct returns the opened/sent ratio as a percentage,
// defaulting to the neutral prior when nothing was sent.
func (s CommunicationStats) ResponseRatePct() float64 {
	if s.TotalSent == 0 {
		return NeutralRatePct
	}
	return float64(s.TotalOpened) / float64(s.TotalSent) * 100
}

// OrderActivityStats counts a client's orders overall and across the two
// comparison windows: recent (trailing 90 days) and older (90-180 days).
type OrderActivityStats struct {
	TotalOrders  int `json:"total_orders"`
	RecentOrders int `json:"recent_orders"`
	OlderOrders  int `json:"older_orders"`
}

// SIPStopped reports whether recurring order activity existed in the
// older window but has stopped entirely in the recent one.
func (s OrderActivityStats) SIPStopped() bool {
	return s.OlderOrders > 0 && s.RecentOrders == 0
}

// RevenueStats aggregates a client's revenue overall and across the same
// recent/older windows used for orders.
type RevenueStats struct {
	TotalRevenue  float64 `json:"total_revenue"`
	RecentRevenue float64 `json:"recent_revenue"`
	OlderRevenue  float64 `json:"older_revenue"`
}

// TaskStats counts advisor tasks for a client.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// CompletionRatePct returns the completed/total ratio as a percentage,
// defaulting to the neutral prior when no tasks exist.
func (s TaskStats) CompletionRatePct() float64 {
	if s.Total == 0 {
		return NeutralRatePct
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// EngagementInput is the snapshot the engagement scorer consumes. All
// fields default to neutral/zero; the scorer has no failure modes.
type EngagementInput struct {
	DaysSinceLastInteraction int
	MeetingsLast90Days       int
	CampaignResponseRatePct  float64
	OrderCount               int
	TotalRevenue             float64
	TaskCompletionRatePct    float64
}

// EngagementComponents is the per-signal breakdown of an engagement
// score. Each component is already clamped to its configured maximum.
type EngagementComponents struct {
	Recency          float64 `json:"recency"`
	Meetings         float64 `json:"meetings"`
	CampaignResponse float64 `json:"campaign_response"`
	OrderActivity    float64 `json:"order_activity"`
	Revenue          float64 `json:"revenue"`
	TaskCompletion   float64 `json:"task_completion"`
}

// EngagementScore is the persisted engagement record for a client.
// Exactly one live record exists per client; recomputation overwrites it.
type EngagementScore struct {
	ClientID     string               `json:"client_id"`
	Score        int                  `json:"score"`
	Level        string               `json:"level"`
	Components   EngagementComponents `json:"components"`
	CalculatedAt time.Time            `json:"calculated_at"`
}

// ChurnInput is the snapshot the churn scorer consumes. EngagementScore
// is the client's current engagement score, fed forward by the caller.
type ChurnInput struct {
	DaysSinceLastInteraction int
	RecentOrders             int
	OlderOrders              int
	EngagementScore          int
	TotalCampaigns           int
	OpenedCampaigns          int
	RecentRevenue            float64
	OlderRevenue             float64
}

// ChurnPrediction is the persisted churn record for a client. RiskFactors
// is never empty: a sentinel entry is inserted when no penalty fired.
type ChurnPrediction struct {
	ClientID       string    `json:"client_id"`
	RiskPercentage int       `json:"risk_percentage"`
	RiskLevel      string    `json:"risk_level"`
	RiskFactors    []string  `json:"risk_factors"`
	CalculatedAt   time.Time `json:"calculated_at"`
}
