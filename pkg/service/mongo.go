// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AccelByte/client-insights/pkg/scoring"
)

// Collection names in the CRM database.
const (
	collClients        = "clients"
	collActivities     = "activities"
	collCommunications = "communications"
	collOrders         = "orders"
	collRevenue        = "revenue"
	collTasks          = "tasks"
)

// Comparison windows used for order and revenue statistics.
const (
	recentWindowDays = 90
	olderWindowDays  = 180
)

// MongoClientDataStore implements ClientDataStore on top of the CRM's
// MongoDB collections.
type MongoClientDataStore struct {
	db *mongo.Database
}

// NewMongoClientDataStore creates a data store bound to the named database.
func NewMongoClientDataStore(client *mongo.Client, database string) *MongoClientDataStore {
	return &MongoClientDataStore{db: client.Database(database)}
}

// ListClientIDs returns the ids of all active clients.
func (m *MongoClientDataStore) ListClientIDs(ctx context.Context) ([]string, error) {
	cursor, err := m.db.Collection(collClients).Find(ctx,
		bson.M{"is_active": true},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode client id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return ids, nil
}

// ActivitySummary derives the recency and meeting-count inputs from the
// client's activity log.
func (m *MongoClientDataStore) ActivitySummary(ctx context.Context, clientID string, now time.Time) (scoring.ClientActivitySummary, error) {
	summary := scoring.ClientActivitySummary{
		DaysSinceLastInteraction: scoring.DefaultDaysSinceInteraction,
	}

	var latest Activity
	err := m.db.Collection(collActivities).FindOne(ctx,
		bson.M{"client_id": clientID},
		options.FindOne().SetSort(bson.D{{Key: "occurred_at", Value: -1}}),
	).Decode(&latest)
	switch {
	case err == mongo.ErrNoDocuments:
		// No activity at all: keep the 365-day default.
	case err != nil:
		return summary, fmt.Errorf("failed to find latest activity for client %s: %w", clientID, err)
	default:
		days := int(now.Sub(latest.OccurredAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		summary.DaysSinceLastInteraction = days
	}

	meetings, err := m.db.Collection(collActivities).CountDocuments(ctx, bson.M{
		"client_id":     clientID,
		"activity_type": ActivityTypeMeeting,
		"occurred_at":   bson.M{"$gte": now.AddDate(0, 0, -recentWindowDays)},
	})
	if err != nil {
		return summary, fmt.Errorf("failed to count meetings for client %s: %w", clientID, err)
	}
	summary.MeetingsLast90Days = int(meetings)

	return summary, nil
}

// CommunicationStats counts sent and opened campaign communications.
func (m *MongoClientDataStore) CommunicationStats(ctx context.Context, clientID string) (scoring.CommunicationStats, error) {
	var stats scoring.CommunicationStats
	coll := m.db.Collection(collCommunications)

	sent, err := coll.CountDocuments(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return stats, fmt.Errorf("failed to count communications for client %s: %w", clientID, err)
	}
	opened, err := coll.CountDocuments(ctx, bson.M{"client_id": clientID, "opened": true})
	if err != nil {
		return stats, fmt.Errorf("failed to count opened communications for client %s: %w", clientID, err)
	}

	stats.TotalSent = int(sent)
	stats.TotalOpened = int(opened)
	return stats, nil
}

// OrderActivity counts orders overall and within the comparison windows.
func (m *MongoClientDataStore) OrderActivity(ctx context.Context, clientID string, now time.Time) (scoring.OrderActivityStats, error) {
	var stats scoring.OrderActivityStats
	coll := m.db.Collection(collOrders)
	recentCutoff := now.AddDate(0, 0, -recentWindowDays)
	olderCutoff := now.AddDate(0, 0, -olderWindowDays)

	total, err := coll.CountDocuments(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return stats, fmt.Errorf("failed to count orders for client %s: %w", clientID, err)
	}
	recent, err := coll.CountDocuments(ctx, bson.M{
		"client_id": clientID,
		"placed_at": bson.M{"$gte": recentCutoff},
	})
	if err != nil {
		return stats, fmt.Errorf("failed to count recent orders for client %s: %w", clientID, err)
	}
	older, err := coll.CountDocuments(ctx, bson.M{
		"client_id": clientID,
		"placed_at": bson.M{"$gte": olderCutoff, "$lt": recentCutoff},
	})
	if err != nil {
		return stats, fmt.Errorf("failed to count older orders for client %s: %w", clientID, err)
	}

	stats.TotalOrders = int(total)
	stats.RecentOrders = int(recent)
	stats.OlderOrders = int(older)
	return stats, nil
}

// RevenueStats sums revenue overall and within the comparison windows.
func (m *MongoClientDataStore) RevenueStats(ctx context.Context, clientID string, now time.Time) (scoring.RevenueStats, error) {
	var stats scoring.RevenueStats
	coll := m.db.Collection(collRevenue)
	recentCutoff := now.AddDate(0, 0, -recentWindowDays)
	olderCutoff := now.AddDate(0, 0, -olderWindowDays)

	total, err := m.sumAmounts(ctx, coll, bson.M{"client_id": clientID})
	if err != nil {
		return stats, fmt.Errorf("failed to sum revenue for client %s: %w", clientID, err)
	}
	recent, err := m.sumAmounts(ctx, coll, bson.M{
		"client_id": clientID,
		"booked_at": bson.M{"$gte": recentCutoff},
	})
	if err != nil {
		return stats, fmt.Errorf("failed to sum recent revenue for client %s: %w", clientID, err)
	}
	older, err := m.sumAmounts(ctx, coll, bson.M{
		"client_id": clientID,
		"booked_at": bson.M{"$gte": olderCutoff, "$lt": recentCutoff},
	})
	if err != nil {
		return stats, fmt.Errorf("failed to sum older revenue for client %s: %w", clientID, err)
	}

	stats.TotalRevenue = total
	stats.RecentRevenue = recent
	stats.OlderRevenue = older
	return stats, nil
}

// TaskStats counts total and completed tasks for a client.
func (m *MongoClientDataStore) TaskStats(ctx context.Context, clientID string) (scoring.TaskStats, error) {
	var stats scoring.TaskStats
	coll := m.db.Collection(collTasks)

	total, err := coll.CountDocuments(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return stats, fmt.Errorf("failed to count tasks for client %s: %w", clientID, err)
	}
	completed, err := coll.CountDocuments(ctx, bson.M{"client_id": clientID, "completed": true})
	if err != nil {
		return stats, fmt.Errorf("failed to count completed tasks for client %s: %w", clientID, err)
	}

	stats.Total = int(total)
	stats.Completed = int(completed)
	return stats, nil
}

// ListSilentClients returns active clients of an advisor with no
// activity since the cutoff, most assets first.
func (m *MongoClientDataStore) ListSilentClients(ctx context.Context, advisorID string, since time.Time, now time.Time) ([]SilentClient, error) {
	cursor, err := m.db.Collection(collClients).Find(ctx,
		bson.M{"advisor_id": advisorID, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "total_assets", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients for advisor %s: %w", advisorID, err)
	}
	defer cursor.Close(ctx)

	var clients []Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients for advisor %s: %w", advisorID, err)
	}

	var silent []SilentClient
	for _, c := range clients {
		var latest Activity
		err := m.db.Collection(collActivities).FindOne(ctx,
			bson.M{"client_id": c.ID},
			options.FindOne().SetSort(bson.D{{Key: "occurred_at", Value: -1}}),
		).Decode(&latest)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("failed to find latest activity for client %s: %w", c.ID, err)
		}

		if err == mongo.ErrNoDocuments {
			silent = append(silent, SilentClient{
				ClientID:    c.ID,
				ClientName:  c.Name,
				TotalAssets: c.TotalAssets,
			})
			continue
		}

		if latest.OccurredAt.Before(since) {
			occurredAt := latest.OccurredAt
			silent = append(silent, SilentClient{
				ClientID:       c.ID,
				ClientName:     c.Name,
				TotalAssets:    c.TotalAssets,
				LastActivityAt: &occurredAt,
				DaysSilent:     int(now.Sub(occurredAt).Hours() / 24),
			})
		}
	}
	return silent, nil
}

// sumAmounts aggregates the amount field over the filtered documents.
func (m *MongoClientDataStore) sumAmounts(ctx context.Context, coll *mongo.Collection, filter bson.M) (float64, error) {
	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
