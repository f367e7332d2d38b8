// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import "time"

// Client is an advisor's client record.
type Client struct {
	ID          string    `bson:"_id" json:"client_id"`
	AdvisorID   string    `bson:"advisor_id" json:"advisor_id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	TotalAssets float64   `bson:"total_assets" json:"total_assets"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Activity is one entry in a client's time-ordered activity log:
// meetings, calls, emails, portfolio updates.
type Activity struct {
	ID           string    `bson:"_id" json:"id"`
	ClientID     string    `bson:"client_id" json:"client_id"`
	ActivityType string    `bson:"activity_type" json:"activity_type"`
	Title        string    `bson:"title" json:"title"`
	OccurredAt   time.Time `bson:"occurred_at" json:"occurred_at"`
}

// ActivityTypeMeeting is the activity type counted for the meetings
// engagement component.
const ActivityTypeMeeting = "meeting"

// Communication is one outbound campaign communication and whether the
// client opened it.
type Communication struct {
	ID       string    `bson:"_id" json:"id"`
	ClientID string    `bson:"client_id" json:"client_id"`
	Channel  string    `bson:"channel" json:"channel"`
	Subject  string    `bson:"subject" json:"subject"`
	Opened   bool      `bson:"opened" json:"opened"`
	SentAt   time.Time `bson:"sent_at" json:"sent_at"`
}

// Order is a client's executed or recurring (SIP) investment order.
type Order struct {
	ID          string    `bson:"_id" json:"id"`
	ClientID    string    `bson:"client_id" json:"client_id"`
	Symbol      string    `bson:"symbol" json:"symbol"`
	OrderType   string    `bson:"order_type" json:"order_type"`
	TotalAmount float64   `bson:"total_amount" json:"total_amount"`
	PlacedAt    time.Time `bson:"placed_at" json:"placed_at"`
}

// RevenueEntry is a single revenue booking attributed to a client.
type RevenueEntry struct {
	ID       string    `bson:"_id" json:"id"`
	ClientID string    `bson:"client_id" json:"client_id"`
	Amount   float64   `bson:"amount" json:"amount"`
	BookedAt time.Time `bson:"booked_at" json:"booked_at"`
}

// Task is an advisor task attached to a client.
type Task struct {
	ID        string    `bson:"_id" json:"id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Title     string    `bson:"title" json:"title"`
	Completed bool      `bson:"completed" json:"completed"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SilentClient is a dormant-client report row: an active client with no
// recorded activity inside the requested window.
type SilentClient struct {
	ClientID       string     `json:"client_id"`
	ClientName     string     `json:"client_name"`
	TotalAssets    float64    `json:"total_assets"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	DaysSilent     int        `json:"days_silent"`
}
