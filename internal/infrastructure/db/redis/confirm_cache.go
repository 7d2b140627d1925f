package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const confirmTTL = 24 * time.Hour

// ConfirmCache remembers reconciled checkout sessions so confirm retries can
// short-circuit before the payment-oracle round trip. It is advisory only:
// the payments collection's unique transaction_id index stays authoritative.
// Key format: confirm:<session_id> → "<transaction_id>|<tracking_id>"
type ConfirmCache struct {
	client *redis.Client
}

func NewConfirmCache(client *redis.Client) *ConfirmCache {
	return &ConfirmCache{client: client}
}

// Lookup returns the cached transaction and tracking ids for a session, or
// ok=false on a miss.
func (c *ConfirmCache) Lookup(ctx context.Context, sessionID string) (string, string, bool, error) {
	val, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("confirm cache get: %w", err)
	}

	txID, trackingID, found := strings.Cut(val, "|")
	if !found {
		return "", "", false, nil
	}
	return txID, trackingID, true, nil
}

// Mark records a reconciled session (expires after confirmTTL).
func (c *ConfirmCache) Mark(ctx context.Context, sessionID, transactionID, trackingID string) error {
	return c.client.Set(ctx, c.key(sessionID), transactionID+"|"+trackingID, confirmTTL).Err()
}

func (c *ConfirmCache) key(sessionID string) string {
	return "confirm:" + sessionID
}
