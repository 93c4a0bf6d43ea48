package client

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Client represents a client record. The internal ID is minted once on first
// upsert and never changes; (PlatformID, PlatformName) is the natural key.
type Client struct {
	ID           uuid.UUID
	PlatformID   string
	PlatformName string
	Name         string
	Phone        string
	Subscribed   bool
	SubsStart    *time.Time
	SubsEnd      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubscriptionActive reports whether the client holds a subscription that is
// both flagged on and not past its end timestamp at the given instant.
func (c *Client) SubscriptionActive(now time.Time) bool {
	if !c.Subscribed {
		return false
	}
	if c.SubsEnd != nil && now.After(*c.SubsEnd) {
		return false
	}
	return true
}

// ClientUpsert is the input for inserting or updating a client.
type ClientUpsert struct {
	ID           uuid.UUID
	PlatformID   string
	PlatformName string
	Name         string
	Phone        string
}

// ITable defines the read-side interface for client storage operations.
type ITable interface {
	FindByPlatformID(ctx context.Context, platformID string) (*Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
}

// IWriter extends the read side with the mutations actions perform inside a
// transaction.
type IWriter interface {
	ITable
	Upsert(ctx context.Context, upsert *ClientUpsert) error
	GrantSubscription(ctx context.Context, id uuid.UUID, start, end time.Time) error
	RevokeSubscription(ctx context.Context, id uuid.UUID) error
}
