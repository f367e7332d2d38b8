// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scoring

import "math"

// recencyHorizonDays is the interaction gap at which the recency
// component decays to zero.
const recencyHorizonDays = 365

// EngagementWeights holds the hand-tuned calibration of the engagement
// scorer. The defaults sum to 100; they are deliberately preserved as-is
// and only overridable through configuration, never recalibrated in code.
type EngagementWeights struct {
	RecencyMax       float64 `yaml:"recency_max"`
	MeetingsMax      float64 `yaml:"meetings_max"`
	MeetingPoints    float64 `yaml:"meeting_points"`
	CampaignMax      float64 `yaml:"campaign_max"`
	OrderMax         float64 `yaml:"order_max"`
	OrderPoints      float64 `yaml:"order_points"`
	RevenueMax       float64 `yaml:"revenue_max"`
	RevenueReference float64 `yaml:"revenue_reference"`
	TaskMax          float64 `yaml:"task_max"`
	HighThreshold    int     `yaml:"high_threshold"`
	MediumThreshold  int     `yaml:"medium_threshold"`
}

// DefaultEngagementWeights returns the production calibration.
func DefaultEngagementWeights() EngagementWeights {
	return EngagementWeights{
		RecencyMax:       25,
		MeetingsMax:      20,
		MeetingPoints:    4,
		CampaignMax:      15,
		OrderMax:         15,
		OrderPoints:      1.5,
		RevenueMax:       15,
		RevenueReference: 500000,
		TaskMax:          10,
		HighThreshold:    75,
		MediumThreshold:  40,
	}
}

// EngagementResult is the outcome of a single engagement computation,
// before the caller stamps client identity and calculation time onto it.
type EngagementResult struct {
	Score      int
	Level      string
	Components EngagementComponents
}

// EngagementScorer combines five weighted activity signals into a 0-100
// engagement score. It is stateless and safe for concurrent use.
type EngagementScorer struct {
	weights EngagementWeights
}

// NewEngagementScorer creates a scorer with the given calibration.
func NewEngagementScorer(weights EngagementWeights) *EngagementScorer {
	return &EngagementScorer{weights: weights}
}

// Compute evaluates the weighted sub-scores for the snapshot. Each
// component is clamped to [0, max] independently before summation and
// the total is capped at 100. Compute never fails: missing inputs are
// expected to arrive as their neutral defaults.
func (s *EngagementScorer) Compute(in EngagementInput) EngagementResult {
	w := s.weights

	// Linear decay from full marks at day 0 to zero at the horizon.
	days := float64(in.DaysSinceLastInteraction)
	recency := clamp(w.RecencyMax-math.Floor(days/recencyHorizonDays*w.RecencyMax), 0, w.RecencyMax)

	meetings := clamp(float64(in.MeetingsLast90Days)*w.MeetingPoints, 0, w.MeetingsMax)

	campaign := clamp(math.Round(in.CampaignResponseRatePct/100*w.CampaignMax), 0, w.CampaignMax)

	orders := clamp(float64(in.OrderCount)*w.OrderPoints, 0, w.OrderMax)

	revenue := clamp(math.Round(in.TotalRevenue/w.RevenueReference*w.RevenueMax), 0, w.RevenueMax)

	tasks := clamp(math.Round(in.TaskCompletionRatePct/100*w.TaskMax), 0, w.TaskMax)

	total := recency + meetings + campaign + orders + revenue + tasks
	score := int(math.Round(clamp(total, 0, 100)))

	return EngagementResult{
		Score: score,
		Level: s.LevelFor(score),
		Components: EngagementComponents{
			Recency:          recency,
			Meetings:         meetings,
			CampaignResponse: campaign,
			OrderActivity:    orders,
			Revenue:          revenue,
			TaskCompletion:   tasks,
		},
	}
}

// LevelFor maps a score to its engagement level.
func (s *EngagementScorer) LevelFor(score int) string {
	switch {
	case score >= s.weights.HighThreshold:
		return LevelHigh
	case score >= s.weights.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
