package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ntdm/animal-hospital/internal/core/domain"
	"github.com/ntdm/animal-hospital/internal/core/ports"
)

const (
	// revokedMarker occupies the key of a logged-out session.
	revokedMarker = "revoked"
	// revokedTTL outlives any read that started before the logout.
	revokedTTL = time.Minute
)

// SessionCache is a read-through cache in front of the durable session
// store. Redis failures are logged and the durable store is used instead.
// Key format: session:<session_id>
type SessionCache struct {
	client *redis.Client
	store  ports.SessionStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewSessionCache wraps store with a Redis cache.
func NewSessionCache(client *redis.Client, store ports.SessionStore, log zerolog.Logger) *SessionCache {
	return &SessionCache{client: client, store: store, log: log, now: time.Now}
}

func (c *SessionCache) Create(ctx context.Context, s *domain.Session) error {
	if err := c.store.Create(ctx, s); err != nil {
		return err
	}
	c.put(ctx, s)
	return nil
}

func (c *SessionCache) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	switch {
	case err == nil:
		if string(raw) == revokedMarker {
			return nil, domain.ErrUnauthenticated
		}
		var s domain.Session
		if err := json.Unmarshal(raw, &s); err == nil && !s.Expired(c.now()) {
			return &s, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("session cache read failed")
	}

	s, err := c.store.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.put(ctx, s)
	return s, nil
}

// Delete removes the durable session, then replaces the cache entry with a
// short-lived revocation marker. put never overwrites an existing key, so a
// read that raced the delete cannot refill the cache with the old session.
func (c *SessionCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	if err := c.client.Set(ctx, sessionKey(sessionID), revokedMarker, revokedTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("session cache evict failed")
		if err := c.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
			c.log.Warn().Err(err).Msg("session cache delete failed")
		}
	}
	return nil
}

func (c *SessionCache) put(ctx context.Context, s *domain.Session) {
	ttl := cacheTTL(s.ExpiresAt, c.now())
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.SetNX(ctx, sessionKey(s.ID), raw, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("session cache write failed")
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// cacheTTL keeps a cached session no longer than the session itself.
func cacheTTL(expiresAt, now time.Time) time.Duration {
	return expiresAt.Sub(now).Truncate(time.Second)
}
