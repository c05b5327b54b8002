// Package redis implements the repository interfaces on Redis. Each store
// is an independent keyspace private to a session ID, serialized as JSON
// inside a versioned "state" envelope, with a TTL so abandoned sessions
// expire on their own.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/rechevshop/storefront/pkg/errors"
)

// envelopeVersion is bumped when the persisted state layout changes.
const envelopeVersion = 1

// envelope is the persisted wrapper around each store's state.
type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// store holds the shared plumbing for the per-session Redis stores.
type store struct {
	client    *redis.Client
	keyPrefix string
	resource  string
	ttl       time.Duration
}

func (s *store) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// get loads and unwraps the envelope for a session into dst.
func (s *store) get(ctx context.Context, sessionID string, dst any) error {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return apperrors.NotFound(s.resource, sessionID)
		}
		return fmt.Errorf("redis get %s: %w", s.resource, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal %s envelope: %w", s.resource, err)
	}
	if err := json.Unmarshal(env.State, dst); err != nil {
		return fmt.Errorf("unmarshal %s state: %w", s.resource, err)
	}
	return nil
}

// set wraps src in the envelope and persists it with the store TTL.
func (s *store) set(ctx context.Context, sessionID string, src any) error {
	state, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("marshal %s state: %w", s.resource, err)
	}

	data, err := json.Marshal(envelope{State: state, Version: envelopeVersion})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", s.resource, err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.resource, err)
	}
	return nil
}

// del removes the session's entry. Deleting a missing key is not an error.
func (s *store) del(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.resource, err)
	}
	return nil
}
