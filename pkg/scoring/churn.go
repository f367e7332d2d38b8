// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scoring

import "fmt"

// Interaction-gap cut points for the recency penalty tiers. The highest
// matching tier wins; the tiers are mutually exclusive.
const (
	inactiveSevereDays   = 90
	inactiveModerateDays = 45
	inactiveMildDays     = 30
)

// Engagement cut points below which the engagement penalty tiers fire.
const (
	engagementVeryLowFloor = 20
	engagementLowFloor     = 40
)

// campaignLowResponseRatio is the open ratio under which the low-response
// campaign penalty fires.
const campaignLowResponseRatio = 0.2

// NoRiskFactors is the sentinel factor inserted when no penalty fired,
// keeping RiskFactors non-empty for every prediction.
const NoRiskFactors = "No significant risk factors detected"

// ChurnPenalties holds the hand-tuned penalty values and level thresholds
// of the churn scorer. Preserved as configurable constants.
type ChurnPenalties struct {
	Inactive90           int `yaml:"inactive_90"`
	Inactive45           int `yaml:"inactive_45"`
	Inactive30           int `yaml:"inactive_30"`
	OrdersStopped        int `yaml:"orders_stopped"`
	OrdersDeclining      int `yaml:"orders_declining"`
	EngagementVeryLow    int `yaml:"engagement_very_low"`
	EngagementLow        int `yaml:"engagement_low"`
	CampaignsIgnored     int `yaml:"campaigns_ignored"`
	CampaignsLowResponse int `yaml:"campaigns_low_response"`
	RevenueStopped       int `yaml:"revenue_stopped"`
	RevenueDeclining     int `yaml:"revenue_declining"`
	HighThreshold        int `yaml:"high_threshold"`
	MediumThreshold      int `yaml:"medium_threshold"`
}

// DefaultChurnPenalties returns the production calibration.
func DefaultChurnPenalties() ChurnPenalties {
	return ChurnPenalties{
		Inactive90:           30,
		Inactive45:           20,
		Inactive30:           10,
		OrdersStopped:        20,
		OrdersDeclining:      10,
		EngagementVeryLow:    25,
		EngagementLow:        15,
		CampaignsIgnored:     15,
		CampaignsLowResponse: 8,
		RevenueStopped:       10,
		RevenueDeclining:     5,
		HighThreshold:        70,
		MediumThreshold:      40,
	}
}

// ChurnResult is the outcome of a single churn risk computation.
type ChurnResult struct {
	RiskPercentage int
	RiskLevel      string
	RiskFactors    []string
}

// ChurnScorer accumulates six weighted penalty signals into a 0-100
// churn risk percentage. Stateless, safe for concurrent use.
type ChurnScorer struct {
	penalties ChurnPenalties
}

// NewChurnScorer creates a scorer with the given calibration.
func NewChurnScorer(penalties ChurnPenalties) *ChurnScorer {
	return &ChurnScorer{penalties: penalties}
}

// Compute evaluates every penalty rule against the snapshot. Each rule
// that fires appends exactly one human-readable factor; the accumulated
// risk is capped at 100. Compute never fails.
func (s *ChurnScorer) Compute(in ChurnInput) ChurnResult {
	p := s.penalties
	risk := 0
	var factors []string

	switch {
	case in.DaysSinceLastInteraction >= inactiveSevereDays:
		risk += p.Inactive90
		factors = append(factors, "No interaction in 90+ days")
	case in.DaysSinceLastInteraction >= inactiveModerateDays:
		risk += p.Inactive45
		factors = append(factors, "No interaction in 45+ days")
	case in.DaysSinceLastInteraction >= inactiveMildDays:
		risk += p.Inactive30
		factors = append(factors, "No interaction in 30+ days")
	}

	if in.OlderOrders > 0 && in.RecentOrders == 0 {
		risk += p.OrdersStopped
		factors = append(factors,
			fmt.Sprintf("SIP or order activity stopped (%d orders in the prior quarter, none since)", in.OlderOrders))
	} else if in.OlderOrders > 0 && float64(in.RecentOrders) < float64(in.OlderOrders)/2 {
		risk += p.OrdersDeclining
		factors = append(factors,
			fmt.Sprintf("Order frequency declining (%d recent vs %d in the prior quarter)", in.RecentOrders, in.OlderOrders))
	}

	if in.EngagementScore < engagementVeryLowFloor {
		risk += p.EngagementVeryLow
		factors = append(factors, fmt.Sprintf("Very low engagement score (%d)", in.EngagementScore))
	} else if in.EngagementScore < engagementLowFloor {
		risk += p.EngagementLow
		factors = append(factors, fmt.Sprintf("Low engagement score (%d)", in.EngagementScore))
	}

	if in.TotalCampaigns > 2 && in.OpenedCampaigns == 0 {
		risk += p.CampaignsIgnored
		factors = append(factors, "No response to any recent campaign")
	} else if in.TotalCampaigns > 0 && float64(in.OpenedCampaigns)/float64(in.TotalCampaigns) < campaignLowResponseRatio {
		risk += p.CampaignsLowResponse
		factors = append(factors, "Campaign response rate below 20%")
	}

	if in.OlderRevenue > 0 && in.RecentRevenue == 0 {
		risk += p.RevenueStopped
		factors = append(factors, "Revenue inflows stopped in the last 90 days")
	} else if in.RecentRevenue < in.OlderRevenue*0.5 {
		risk += p.RevenueDeclining
		factors = append(factors, "Revenue inflows declining")
	}

	if risk > 100 {
		risk = 100
	}
	if len(factors) == 0 {
		factors = []string{NoRiskFactors}
	}

	return ChurnResult{
		RiskPercentage: risk,
		RiskLevel:      s.LevelFor(risk),
		RiskFactors:    factors,
	}
}

// LevelFor maps a risk percentage to its risk level.
func (s *ChurnScorer) LevelFor(risk int) string {
	switch {
	case risk >= s.penalties.HighThreshold:
		return LevelHigh
	case risk >= s.penalties.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}
