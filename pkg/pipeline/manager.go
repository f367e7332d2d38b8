// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package pipeline orchestrates the insight recalculation flow:
// snapshot fetch, engagement scoring, churn scoring, persistence.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/client-insights/pkg/common"
	"github.com/AccelByte/client-insights/pkg/metrics"
	"github.com/AccelByte/client-insights/pkg/scoring"
	"github.com/AccelByte/client-insights/pkg/service"
)

// fetchMaxRetries bounds the exponential backoff around snapshot reads.
const fetchMaxRetries = 3

// Manager orchestrates insight recalculation for clients:
// Snapshot → Engagement → Churn → Upsert.
type Manager struct {
	data       service.ClientDataStore
	scores     service.ScoreStore
	engagement *scoring.EngagementScorer
	churn      *scoring.ChurnScorer
	now        func() time.Time
}

// NewManager creates a pipeline manager with all required collaborators.
func NewManager(data service.ClientDataStore, scores service.ScoreStore, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig()
	}

	return &Manager{
		data:       data,
		scores:     scores,
		engagement: scoring.NewEngagementScorer(config.Engagement),
		churn:      scoring.NewChurnScorer(config.Churn),
		now:        time.Now,
	}
}

// SetClock overrides the evaluation clock. This is mostly useful for testing.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// snapshot is the point-in-time view of a client the scorers consume.
type snapshot struct {
	activity scoring.ClientActivitySummary
	comms    scoring.CommunicationStats
	orders   scoring.OrderActivityStats
	revenue  scoring.RevenueStats
	tasks    scoring.TaskStats
}

// RecalculateClient recomputes and persists both insight records for one
// client. The engagement score feeds the churn input, so the two records
// written by a single call are always mutually consistent.
func (m *Manager) RecalculateClient(ctx context.Context, clientID string) (*scoring.EngagementScore, *scoring.ChurnPrediction, error) {
	scope := common.GetScopeFromContext(ctx, "Manager.RecalculateClient")
	defer scope.Finish()
	scope.AddBaggage("clientId", clientID)

	start := m.now()
	now := start.UTC()

	snap, err := m.fetchSnapshot(scope.Ctx, clientID, now)
	if err != nil {
		scope.TraceError(err)
		metrics.RecalculationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, nil, fmt.Errorf("failed to fetch snapshot for client %s: %w", clientID, err)
	}

	engagementResult := m.engagement.Compute(scoring.EngagementInput{
		DaysSinceLastInteraction: snap.activity.DaysSinceLastInteraction,
		MeetingsLast90Days:       snap.activity.MeetingsLast90Days,
		CampaignResponseRatePct:  snap.comms.ResponseRatePct(),
		OrderCount:               snap.orders.TotalOrders,
		TotalRevenue:             snap.revenue.TotalRevenue,
		TaskCompletionRatePct:    snap.tasks.CompletionRatePct(),
	})

	churnResult := m.churn.Compute(scoring.ChurnInput{
		DaysSinceLastInteraction: snap.activity.DaysSinceLastInteraction,
		RecentOrders:             snap.orders.RecentOrders,
		OlderOrders:              snap.orders.OlderOrders,
		EngagementScore:          engagementResult.Score,
		TotalCampaigns:           snap.comms.TotalSent,
		OpenedCampaigns:          snap.comms.TotalOpened,
		RecentRevenue:            snap.revenue.RecentRevenue,
		OlderRevenue:             snap.revenue.OlderRevenue,
	})

	engagementScore := &scoring.EngagementScore{
		ClientID:     clientID,
		Score:        engagementResult.Score,
		Level:        engagementResult.Level,
		Components:   engagementResult.Components,
		CalculatedAt: now,
	}
	churnPrediction := &scoring.ChurnPrediction{
		ClientID:       clientID,
		RiskPercentage: churnResult.RiskPercentage,
		RiskLevel:      churnResult.RiskLevel,
		RiskFactors:    churnResult.RiskFactors,
		CalculatedAt:   now,
	}

	if err := m.scores.UpsertEngagementScore(scope.Ctx, engagementScore); err != nil {
		scope.TraceError(err)
		metrics.RecalculationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, nil, err
	}
	if err := m.scores.UpsertChurnPrediction(scope.Ctx, churnPrediction); err != nil {
		scope.TraceError(err)
		metrics.RecalculationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, nil, err
	}

	metrics.RecalculationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.RecalculationDuration.Observe(m.now().Sub(start).Seconds())

	scope.Log.WithFields(logrus.Fields{
		"clientId":   clientID,
		"engagement": engagementScore.Score,
		"churnRisk":  churnPrediction.RiskPercentage,
	}).Info("recalculated client insights")

	return engagementScore, churnPrediction, nil
}

// BatchResult reports the outcome of a full recalculation run.
type BatchResult struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// RecalculateAll recomputes insights for every active client sequentially.
// A per-client failure is logged and counted but does not stop the run;
// only listing failures and context cancellation abort it.
func (m *Manager) RecalculateAll(ctx context.Context) (BatchResult, error) {
	scope := common.GetScopeFromContext(ctx, "Manager.RecalculateAll")
	defer scope.Finish()

	var result BatchResult

	clientIDs, err := m.data.ListClientIDs(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		return result, fmt.Errorf("failed to list clients: %w", err)
	}

	for _, clientID := range clientIDs {
		if err := scope.Ctx.Err(); err != nil {
			return result, err
		}

		if _, _, err := m.RecalculateClient(scope.Ctx, clientID); err != nil {
			scope.Log.WithField("clientId", clientID).
				Warnf("skipping client after recalculation failure: %v", err)
			result.Failed++
			continue
		}
		result.Processed++
	}

	scope.Log.WithFields(logrus.Fields{
		"processed": result.Processed,
		"failed":    result.Failed,
	}).Info("batch recalculation finished")

	return result, nil
}

// fetchSnapshot reads the five per-client statistics, retrying transient
// store failures with exponential backoff.
func (m *Manager) fetchSnapshot(ctx context.Context, clientID string, now time.Time) (snapshot, error) {
	var snap snapshot

	operation := func() error {
		var err error
		if snap.activity, err = m.data.ActivitySummary(ctx, clientID, now); err != nil {
			return err
		}
		if snap.comms, err = m.data.CommunicationStats(ctx, clientID); err != nil {
			return err
		}
		if snap.orders, err = m.data.OrderActivity(ctx, clientID, now); err != nil {
			return err
		}
		if snap.revenue, err = m.data.RevenueStats(ctx, clientID, now); err != nil {
			return err
		}
		if snap.tasks, err = m.data.TaskStats(ctx, clientID); err != nil {
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return snap, err
	}
	return snap, nil
}
