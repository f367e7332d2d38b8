// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/client-insights/pkg/scoring"
	"github.com/AccelByte/client-insights/pkg/service"
)

// clientFixture is the canned snapshot a stubDataStore serves per client.
type clientFixture struct {
	activity scoring.ClientActivitySummary
	comms    scoring.CommunicationStats
	orders   scoring.OrderActivityStats
	revenue  scoring.RevenueStats
	tasks    scoring.TaskStats
}

// stubDataStore serves canned fixtures and injects failures per client.
type stubDataStore struct {
	ids      []string
	fixtures map[string]clientFixture
	failFor  map[string]error
	listErr  error
}

func (s *stubDataStore) ListClientIDs(ctx context.Context) ([]string, error) {
	return s.ids, s.listErr
}

func (s *stubDataStore) ActivitySummary(ctx context.Context, clientID string, now time.Time) (scoring.ClientActivitySummary, error) {
	if err := s.failFor[clientID]; err != nil {
		return scoring.ClientActivitySummary{}, err
	}
	return s.fixtures[clientID].activity, nil
}

func (s *stubDataStore) CommunicationStats(ctx context.Context, clientID string) (scoring.CommunicationStats, error) {
	return s.fixtures[clientID].comms, nil
}

func (s *stubDataStore) OrderActivity(ctx context.Context, clientID string, now time.Time) (scoring.OrderActivityStats, error) {
	return s.fixtures[clientID].orders, nil
}

func (s *stubDataStore) RevenueStats(ctx context.Context, clientID string, now time.Time) (scoring.RevenueStats, error) {
	return s.fixtures[clientID].revenue, nil
}

func (s *stubDataStore) TaskStats(ctx context.Context, clientID string) (scoring.TaskStats, error) {
	return s.fixtures[clientID].tasks, nil
}

func (s *stubDataStore) ListSilentClients(ctx context.Context, advisorID string, since time.Time, now time.Time) ([]service.SilentClient, error) {
	return nil, nil
}

// memScoreStore keeps records in maps, mirroring the Redis store contract.
type memScoreStore struct {
	engagement map[string]*scoring.EngagementScore
	churn      map[string]*scoring.ChurnPrediction
	upsertErr  error
}

func newMemScoreStore() *memScoreStore {
	return &memScoreStore{
		engagement: make(map[string]*scoring.EngagementScore),
		churn:      make(map[string]*scoring.ChurnPrediction),
	}
}

func (s *memScoreStore) UpsertEngagementScore(ctx context.Context, score *scoring.EngagementScore) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.engagement[score.ClientID] = score
	return nil
}

func (s *memScoreStore) GetEngagementScore(ctx context.Context, clientID string) (*scoring.EngagementScore, error) {
	return s.engagement[clientID], nil
}

func (s *memScoreStore) UpsertChurnPrediction(ctx context.Context, prediction *scoring.ChurnPrediction) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.churn[prediction.ClientID] = prediction
	return nil
}

func (s *memScoreStore) GetChurnPrediction(ctx context.Context, clientID string) (*scoring.ChurnPrediction, error) {
	return s.churn[clientID], nil
}

func healthyFixture() clientFixture {
	return clientFixture{
		activity: scoring.ClientActivitySummary{DaysSinceLastInteraction: 10, MeetingsLast90Days: 5},
		comms:    scoring.CommunicationStats{TotalSent: 10, TotalOpened: 8},
		orders:   scoring.OrderActivityStats{TotalOrders: 10, RecentOrders: 3, OlderOrders: 3},
		revenue:  scoring.RevenueStats{TotalRevenue: 500000, RecentRevenue: 100000, OlderRevenue: 100000},
		tasks:    scoring.TaskStats{Total: 10, Completed: 9},
	}
}

func dormantFixture() clientFixture {
	return clientFixture{
		activity: scoring.ClientActivitySummary{DaysSinceLastInteraction: 100},
		comms:    scoring.CommunicationStats{TotalSent: 5, TotalOpened: 0},
		orders:   scoring.OrderActivityStats{TotalOrders: 4, RecentOrders: 0, OlderOrders: 4},
		revenue:  scoring.RevenueStats{TotalRevenue: 1000, RecentRevenue: 0, OlderRevenue: 5000},
	}
}

func TestRecalculateClient_HealthyClient(t *testing.T) {
	data := &stubDataStore{fixtures: map[string]clientFixture{"client-1": healthyFixture()}}
	scores := newMemScoreStore()
	manager := NewManager(data, scores, nil)
	manager.SetClock(func() time.Time {
		return time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	})

	engagement, churn, err := manager.RecalculateClient(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("RecalculateClient() error = %v", err)
	}

	// recency 25 + meetings 20 + campaign 12 + orders 15 + revenue 15 + tasks 9
	if engagement.Score != 96 || engagement.Level != scoring.LevelHigh {
		t.Errorf("expected engagement 96/high, got %d/%s", engagement.Score, engagement.Level)
	}
	if churn.RiskPercentage != 0 || churn.RiskLevel != scoring.LevelLow {
		t.Errorf("expected churn 0/low, got %d/%s", churn.RiskPercentage, churn.RiskLevel)
	}
	if len(churn.RiskFactors) != 1 || churn.RiskFactors[0] != scoring.NoRiskFactors {
		t.Errorf("expected sentinel risk factor, got %v", churn.RiskFactors)
	}

	persisted, _ := scores.GetEngagementScore(context.Background(), "client-1")
	if persisted == nil || persisted.Score != engagement.Score {
		t.Errorf("expected engagement record to be persisted, got %+v", persisted)
	}
	if !persisted.CalculatedAt.Equal(time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("expected the injected clock as CalculatedAt, got %v", persisted.CalculatedAt)
	}
}

func TestRecalculateClient_EngagementFeedsChurn(t *testing.T) {
	data := &stubDataStore{fixtures: map[string]clientFixture{"client-2": dormantFixture()}}
	scores := newMemScoreStore()
	manager := NewManager(data, scores, nil)

	engagement, churn, err := manager.RecalculateClient(context.Background(), "client-2")
	if err != nil {
		t.Fatalf("RecalculateClient() error = %v", err)
	}

	// recency 19 + orders 6 + neutral tasks 5
	if engagement.Score != 30 || engagement.Level != scoring.LevelLow {
		t.Fatalf("expected engagement 30/low, got %d/%s", engagement.Score, engagement.Level)
	}

	// inactivity 30 + orders stopped 20 + low engagement 15 + campaigns ignored 15 + revenue stopped 10
	if churn.RiskPercentage != 90 || churn.RiskLevel != scoring.LevelHigh {
		t.Errorf("expected churn 90/high, got %d/%s", churn.RiskPercentage, churn.RiskLevel)
	}

	// The factor text carries the freshly computed engagement score.
	found := false
	for _, factor := range churn.RiskFactors {
		if factor == "Low engagement score (30)" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected churn factors to reflect the new engagement score, got %v", churn.RiskFactors)
	}
}

func TestRecalculateClient_DataStoreFailure(t *testing.T) {
	data := &stubDataStore{
		fixtures: map[string]clientFixture{},
		failFor:  map[string]error{"client-3": errors.New("mongo unavailable")},
	}
	scores := newMemScoreStore()
	manager := NewManager(data, scores, nil)

	_, _, err := manager.RecalculateClient(context.Background(), "client-3")
	if err == nil {
		t.Fatal("expected error when snapshot fetch fails")
	}

	if persisted, _ := scores.GetEngagementScore(context.Background(), "client-3"); persisted != nil {
		t.Errorf("expected nothing persisted after failure, got %+v", persisted)
	}
}

func TestRecalculateAll_ContinuesPastFailures(t *testing.T) {
	data := &stubDataStore{
		ids: []string{"client-1", "client-bad", "client-2"},
		fixtures: map[string]clientFixture{
			"client-1": healthyFixture(),
			"client-2": dormantFixture(),
		},
		failFor: map[string]error{"client-bad": errors.New("mongo unavailable")},
	}
	scores := newMemScoreStore()
	manager := NewManager(data, scores, nil)

	result, err := manager.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("RecalculateAll() error = %v", err)
	}

	if result.Processed != 2 || result.Failed != 1 {
		t.Errorf("expected processed=2 failed=1, got %+v", result)
	}
	if persisted, _ := scores.GetChurnPrediction(context.Background(), "client-2"); persisted == nil {
		t.Error("expected churn record for client-2 despite earlier failure")
	}
}

func TestRecalculateAll_ListFailure(t *testing.T) {
	data := &stubDataStore{listErr: errors.New("mongo unavailable")}
	manager := NewManager(data, newMemScoreStore(), nil)

	if _, err := manager.RecalculateAll(context.Background()); err == nil {
		t.Fatal("expected error when client listing fails")
	}
}

func TestRecalculateAll_ContextCancelled(t *testing.T) {
	data := &stubDataStore{
		ids:      []string{"client-1"},
		fixtures: map[string]clientFixture{"client-1": healthyFixture()},
	}
	manager := NewManager(data, newMemScoreStore(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := manager.RecalculateAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
