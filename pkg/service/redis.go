// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/client-insights/pkg/scoring"
)

const (
	// engagementKeyPrefix is the prefix for engagement score records.
	engagementKeyPrefix = "client_insights:engagement:"
	// churnKeyPrefix is the prefix for churn prediction records.
	churnKeyPrefix = "client_insights:churn:"
)

// RedisScoreStore implements ScoreStore using Redis. Records are stored
// as JSON under one key per client, so SET is the upsert.
type RedisScoreStore struct {
	client *redis.Client
}

// NewRedisScoreStore creates a new Redis-backed score store.
func NewRedisScoreStore(client *redis.Client) *RedisScoreStore {
	return &RedisScoreStore{client: client}
}

func makeEngagementKey(clientID string) string {
	return engagementKeyPrefix + clientID
}

func makeChurnKey(clientID string) string {
	return churnKeyPrefix + clientID
}

// UpsertEngagementScore overwrites the live engagement record for a client.
func (r *RedisScoreStore) UpsertEngagementScore(ctx context.Context, score *scoring.EngagementScore) error {
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement score: %w", err)
	}

	if err := r.client.Set(ctx, makeEngagementKey(score.ClientID), data, 0).Err(); err != nil {
		logrus.Errorf("failed to upsert engagement score for client %s: %v", score.ClientID, err)
		return fmt.Errorf("failed to upsert engagement score: %w", err)
	}

	logrus.Debugf("upserted engagement score for client %s: %d (%s)", score.ClientID, score.Score, score.Level)
	return nil
}

// GetEngagementScore retrieves the live engagement record for a client.
// Returns nil when the client has never been scored.
func (r *RedisScoreStore) GetEngagementScore(ctx context.Context, clientID string) (*scoring.EngagementScore, error) {
	data, err := r.client.Get(ctx, makeEngagementKey(clientID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("failed to get engagement score for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to get engagement score: %w", err)
	}

	var score scoring.EngagementScore
	if err := json.Unmarshal([]byte(data), &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engagement score: %w", err)
	}
	return &score, nil
}

// UpsertChurnPrediction overwrites the live churn record for a client.
func (r *RedisScoreStore) UpsertChurnPrediction(ctx context.Context, prediction *scoring.ChurnPrediction) error {
	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal churn prediction: %w", err)
	}

	if err := r.client.Set(ctx, makeChurnKey(prediction.ClientID), data, 0).Err(); err != nil {
		logrus.Errorf("failed to upsert churn prediction for client %s: %v", prediction.ClientID, err)
		return fmt.Errorf("failed to upsert churn prediction: %w", err)
	}

	logrus.Debugf("upserted churn prediction for client %s: %d%% (%s)",
		prediction.ClientID, prediction.RiskPercentage, prediction.RiskLevel)
	return nil
}

// GetChurnPrediction retrieves the live churn record for a client.
// Returns nil when the client has never been scored.
func (r *RedisScoreStore) GetChurnPrediction(ctx context.Context, clientID string) (*scoring.ChurnPrediction, error) {
	data, err := r.client.Get(ctx, makeChurnKey(clientID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("failed to get churn prediction for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to get churn prediction: %w", err)
	}

	var prediction scoring.ChurnPrediction
	if err := json.Unmarshal([]byte(data), &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal churn prediction: %w", err)
	}
	return &prediction, nil
}
