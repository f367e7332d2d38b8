// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, "")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Engagement != DefaultConfig().Engagement {
		t.Errorf("empty file should keep default engagement weights, got %+v", config.Engagement)
	}
	if config.Churn != DefaultConfig().Churn {
		t.Errorf("empty file should keep default churn penalties, got %+v", config.Churn)
	}
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := writeConfigFile(t, `
engagement:
  high_threshold: 80
churn:
  inactive_90: 40
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Engagement.HighThreshold != 80 {
		t.Errorf("expected overridden high threshold 80, got %d", config.Engagement.HighThreshold)
	}
	if config.Engagement.RecencyMax != 25 {
		t.Errorf("omitted recency_max should keep default 25, got %v", config.Engagement.RecencyMax)
	}
	if config.Churn.Inactive90 != 40 {
		t.Errorf("expected overridden inactive_90 penalty 40, got %d", config.Churn.Inactive90)
	}
	if config.Churn.OrdersStopped != 20 {
		t.Errorf("omitted orders_stopped should keep default 20, got %d", config.Churn.OrdersStopped)
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_HIGH_THRESHOLD", "85")

	path := writeConfigFile(t, `
engagement:
  high_threshold: ${TEST_HIGH_THRESHOLD:75}
  medium_threshold: ${TEST_MEDIUM_THRESHOLD:40}
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Engagement.HighThreshold != 85 {
		t.Errorf("expected env-expanded threshold 85, got %d", config.Engagement.HighThreshold)
	}
	if config.Engagement.MediumThreshold != 40 {
		t.Errorf("expected default-expanded threshold 40, got %d", config.Engagement.MediumThreshold)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "engagement: [not a mapping")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero engagement weight",
			mutate:  func(c *Config) { c.Engagement.RecencyMax = 0 },
			wantErr: true,
		},
		{
			name:    "zero revenue reference",
			mutate:  func(c *Config) { c.Engagement.RevenueReference = 0 },
			wantErr: true,
		},
		{
			name:    "inverted engagement thresholds",
			mutate:  func(c *Config) { c.Engagement.HighThreshold = 30 },
			wantErr: true,
		},
		{
			name:    "negative churn penalty",
			mutate:  func(c *Config) { c.Churn.RevenueDeclining = -1 },
			wantErr: true,
		},
		{
			name:    "inverted churn thresholds",
			mutate:  func(c *Config) { c.Churn.MediumThreshold = 90 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
