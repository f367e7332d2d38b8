// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"time"

	"github.com/AccelByte/client-insights/pkg/scoring"
)

// ClientDataStore is the read-side data-access collaborator. It derives
// the per-client snapshot statistics the scorers consume, each within
// the caller-specified evaluation time. Implementations own any
// timeouts; the scoring logic itself has none.
type ClientDataStore interface {
	// ListClientIDs returns the ids of all active clients.
	ListClientIDs(ctx context.Context) ([]string, error)

	// ActivitySummary derives days-since-last-interaction (365 when no
	// activity exists) and meetings in the trailing 90 days.
	ActivitySummary(ctx context.Context, clientID string, now time.Time) (scoring.ClientActivitySummary, error)

	// CommunicationStats counts sent and opened campaign communications.
	CommunicationStats(ctx context.Context, clientID string) (scoring.CommunicationStats, error)

	// OrderActivity counts orders overall and within the recent (90d)
	// and older (90-180d) windows relative to now.
	OrderActivity(ctx context.Context, clientID string, now time.Time) (scoring.OrderActivityStats, error)

	// RevenueStats sums revenue overall and within the same windows.
	RevenueStats(ctx context.Context, clientID string, now time.Time) (scoring.RevenueStats, error)

	// TaskStats counts total and completed tasks.
	TaskStats(ctx context.Context, clientID string) (scoring.TaskStats, error)

	// ListSilentClients returns active clients of an advisor with no
	// activity since the cutoff, most assets first.
	ListSilentClients(ctx context.Context, advisorID string, since time.Time, now time.Time) ([]SilentClient, error)
}

// ScoreStore is the persistence sink for computed insight records. Every
// write is an upsert keyed by client id: exactly one live record per
// client, last writer wins.
type ScoreStore interface {
	UpsertEngagementScore(ctx context.Context, score *scoring.EngagementScore) error

	// GetEngagementScore returns the live record, or nil when the client
	// has never been scored.
	GetEngagementScore(ctx context.Context, clientID string) (*scoring.EngagementScore, error)

	UpsertChurnPrediction(ctx context.Context, prediction *scoring.ChurnPrediction) error

	// GetChurnPrediction returns the live record, or nil when the client
	// has never been scored.
	GetChurnPrediction(ctx context.Context, clientID string) (*scoring.ChurnPrediction, error)
}
