// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scoring

import (
	"reflect"
	"strings"
	"testing"
)

// healthyInput fires no penalty rule at all.
func healthyInput() ChurnInput {
	return ChurnInput{
		DaysSinceLastInteraction: 5,
		RecentOrders:             4,
		OlderOrders:              4,
		EngagementScore:          80,
		TotalCampaigns:           4,
		OpenedCampaigns:          3,
		RecentRevenue:            10000,
		OlderRevenue:             10000,
	}
}

func TestChurnScorerCompute(t *testing.T) {
	scorer := NewChurnScorer(DefaultChurnPenalties())

	tests := []struct {
		name            string
		input           ChurnInput
		expectedRisk    int
		expectedLevel   string
		expectedFactors int
	}{
		{
			name:            "healthy client has sentinel factor only",
			input:           healthyInput(),
			expectedRisk:    0,
			expectedLevel:   LevelLow,
			expectedFactors: 1,
		},
		{
			name: "dormant disengaged client",
			input: ChurnInput{
				DaysSinceLastInteraction: 120, // +30
				RecentOrders:             0,
				OlderOrders:              3, // +20 stopped
				EngagementScore:          15, // +25
				TotalCampaigns:           5,
				OpenedCampaigns:          0, // +15
				RecentRevenue:            8000,
				OlderRevenue:             8000, // unchanged, no penalty
			},
			expectedRisk:    90,
			expectedLevel:   LevelHigh,
			expectedFactors: 4,
		},
		{
			name: "every penalty at maximum caps at 100",
			input: ChurnInput{
				DaysSinceLastInteraction: 400, // +30
				RecentOrders:             0,
				OlderOrders:              10, // +20
				EngagementScore:          0,  // +25
				TotalCampaigns:           10,
				OpenedCampaigns:          0, // +15
				RecentRevenue:            0,
				OlderRevenue:             50000, // +10
			},
			expectedRisk:    100,
			expectedLevel:   LevelHigh,
			expectedFactors: 5,
		},
		{
			name: "mild tiers only",
			input: ChurnInput{
				DaysSinceLastInteraction: 32, // +10
				RecentOrders:             1,
				OlderOrders:              4, // +10 declining
				EngagementScore:          35, // +15
				TotalCampaigns:           10,
				OpenedCampaigns:          1, // +8 low response
				RecentRevenue:            400,
				OlderRevenue:             1000, // +5 declining
			},
			expectedRisk:    48,
			expectedLevel:   LevelMedium,
			expectedFactors: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Compute(tt.input)

			if result.RiskPercentage != tt.expectedRisk {
				t.Errorf("Compute() risk = %d, expected %d", result.RiskPercentage, tt.expectedRisk)
			}
			if result.RiskLevel != tt.expectedLevel {
				t.Errorf("Compute() level = %s, expected %s", result.RiskLevel, tt.expectedLevel)
			}
			if len(result.RiskFactors) != tt.expectedFactors {
				t.Errorf("Compute() factors = %v, expected %d entries", result.RiskFactors, tt.expectedFactors)
			}
			if len(result.RiskFactors) == 0 {
				t.Fatal("risk factors must never be empty")
			}
		})
	}
}

func TestChurnRecencyTiersAreExclusive(t *testing.T) {
	scorer := NewChurnScorer(DefaultChurnPenalties())

	tests := []struct {
		days         int
		expectedRisk int
	}{
		{0, 0},
		{29, 0},
		{30, 10},
		{44, 10},
		{45, 20},
		{89, 20},
		{90, 30},
		{365, 30},
	}

	for _, tt := range tests {
		in := healthyInput()
		in.DaysSinceLastInteraction = tt.days
		result := scorer.Compute(in)
		if result.RiskPercentage != tt.expectedRisk {
			t.Errorf("days=%d: risk = %d, expected %d", tt.days, result.RiskPercentage, tt.expectedRisk)
		}
	}
}

func TestChurnFactorsInterpolateValues(t *testing.T) {
	scorer := NewChurnScorer(DefaultChurnPenalties())

	in := healthyInput()
	in.EngagementScore = 15
	in.RecentOrders = 0
	in.OlderOrders = 3

	result := scorer.Compute(in)

	var hasEngagement, hasOrders bool
	for _, f := range result.RiskFactors {
		if strings.Contains(f, "engagement score (15)") {
			hasEngagement = true
		}
		if strings.Contains(f, "3 orders") {
			hasOrders = true
		}
	}
	if !hasEngagement {
		t.Errorf("expected engagement factor with interpolated score, got %v", result.RiskFactors)
	}
	if !hasOrders {
		t.Errorf("expected order factor with interpolated count, got %v", result.RiskFactors)
	}
}

func TestChurnSentinelFactor(t *testing.T) {
	scorer := NewChurnScorer(DefaultChurnPenalties())

	result := scorer.Compute(healthyInput())
	if len(result.RiskFactors) != 1 || result.RiskFactors[0] != NoRiskFactors {
		t.Errorf("expected single sentinel factor, got %v", result.RiskFactors)
	}
}

func TestChurnDeterminism(t *testing.T) {
	scorer := NewChurnScorer(DefaultChurnPenalties())
	in := ChurnInput{
		DaysSinceLastInteraction: 50,
		RecentOrders:             1,
		OlderOrders:              5,
		EngagementScore:          30,
		TotalCampaigns:           3,
		OpenedCampaigns:          1,
		RecentRevenue:            100,
		OlderRevenue:             900,
	}

	first := scorer.Compute(in)
	second := scorer.Compute(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different results: %+v vs %+v", first, second)
	}
}

func TestChurnLevelThresholds(t *testing.T) {
	scorer := NewChurnScorer(DefaultChurnPenalties())

	tests := []struct {
		risk     int
		expected string
	}{
		{0, LevelLow},
		{39, LevelLow},
		{40, LevelMedium},
		{69, LevelMedium},
		{70, LevelHigh},
		{100, LevelHigh},
	}

	for _, tt := range tests {
		if got := scorer.LevelFor(tt.risk); got != tt.expected {
			t.Errorf("LevelFor(%d) = %s, expected %s", tt.risk, got, tt.expected)
		}
	}
}
