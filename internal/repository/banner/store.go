// Package banner persists the merchandising banner returned with a search
// response so the follow-up impression and click telemetry can find it. The
// banner is keyed by request identity and expires on its own: it must never
// be shared across requests.
package banner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/db"
	dombanner "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
)

// store is the consumer interface for banner cache operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Store implements request-scoped banner persistence on top of the KV cache.
type Store struct {
	store store
	ttl   time.Duration
}

// dto is the cache wire format for a banner.
type dto struct {
	ID      int             `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New creates a banner store. ttl should comfortably cover the gap between a
// search response and the user's banner interaction (recommended: 30m).
func New(s store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

// Put stores a banner for the given request.
func (s *Store) Put(ctx context.Context, requestID string, b dombanner.Banner) error {
	data, err := json.Marshal(dto{ID: b.ID(), Payload: b.Payload()})
	if err != nil {
		return fmt.Errorf("banner marshal: %w", err)
	}
	if err := s.store.SetWithTTL(ctx, key(requestID), data, s.ttl); err != nil {
		return fmt.Errorf("banner SET %s: %w", requestID, err)
	}
	return nil
}

// Get returns the banner stored for the request, or (nil, nil) when none was
// stored or it already expired.
func (s *Store) Get(ctx context.Context, requestID string) (*dombanner.Banner, error) {
	data, err := s.store.Get(ctx, key(requestID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("banner GET %s: %w", requestID, err)
	}

	var d dto
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("banner GET %s parse: %w", requestID, err)
	}
	b := dombanner.New(d.ID, d.Payload)
	return &b, nil
}

// Delete drops the banner for the request. Used after the impression is
// registered so repeat page loads do not double-count.
func (s *Store) Delete(ctx context.Context, requestID string) error {
	if err := s.store.Del(ctx, key(requestID)); err != nil {
		return fmt.Errorf("banner DEL %s: %w", requestID, err)
	}
	return nil
}

func key(requestID string) string {
	return "doofinder:banner:" + requestID
}
