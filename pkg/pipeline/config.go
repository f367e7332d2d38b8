// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AccelByte/client-insights/pkg/scoring"
)

// Config holds the scoring calibration loaded from YAML. Fields that are
// omitted in the file keep their production defaults.
type Config struct {
	Engagement scoring.EngagementWeights `yaml:"engagement"`
	Churn      scoring.ChurnPenalties    `yaml:"churn"`
}

// DefaultConfig returns the production calibration.
func DefaultConfig() *Config {
	return &Config{
		Engagement: scoring.DefaultEngagementWeights(),
		Churn:      scoring.DefaultChurnPenalties(),
	}
}

// LoadConfig loads the scoring calibration from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	// Unmarshal over the defaults so omitted keys stay calibrated
	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the calibration for common errors.
func (c *Config) Validate() error {
	e := c.Engagement
	for name, v := range map[string]float64{
		"engagement.recency_max":       e.RecencyMax,
		"engagement.meetings_max":      e.MeetingsMax,
		"engagement.meeting_points":    e.MeetingPoints,
		"engagement.campaign_max":      e.CampaignMax,
		"engagement.order_max":         e.OrderMax,
		"engagement.order_points":      e.OrderPoints,
		"engagement.revenue_max":       e.RevenueMax,
		"engagement.revenue_reference": e.RevenueReference,
		"engagement.task_max":          e.TaskMax,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	if e.HighThreshold <= e.MediumThreshold {
		return fmt.Errorf("engagement.high_threshold (%d) must be above engagement.medium_threshold (%d)",
			e.HighThreshold, e.MediumThreshold)
	}

	p := c.Churn
	for name, v := range map[string]int{
		"churn.inactive_90":            p.Inactive90,
		"churn.inactive_45":            p.Inactive45,
		"churn.inactive_30":            p.Inactive30,
		"churn.orders_stopped":         p.OrdersStopped,
		"churn.orders_declining":       p.OrdersDeclining,
		"churn.engagement_very_low":    p.EngagementVeryLow,
		"churn.engagement_low":         p.EngagementLow,
		"churn.campaigns_ignored":      p.CampaignsIgnored,
		"churn.campaigns_low_response": p.CampaignsLowResponse,
		"churn.revenue_stopped":        p.RevenueStopped,
		"churn.revenue_declining":      p.RevenueDeclining,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if p.HighThreshold <= p.MediumThreshold {
		return fmt.Errorf("churn.high_threshold (%d) must be above churn.medium_threshold (%d)",
			p.HighThreshold, p.MediumThreshold)
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
