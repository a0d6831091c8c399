package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// KV is the persistence boundary: whole values stored under string keys.
// Implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Collection is an ordered sequence of records stored as one JSON array
// under a single key.
type Collection[T any] struct {
	kv     KV
	key    string
	logger *zap.Logger
}

func NewCollection[T any](kv KV, key string, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{
		kv:     kv,
		key:    key,
		logger: logger.With(zap.String("key", key)),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load never fails: a missing key, a null value, malformed JSON or a read
// error all yield an empty sequence.
func (c *Collection[T]) Load(ctx context.Context) []T {
	raw, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("read failed, using empty collection", zap.Error(err))
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Warn("malformed stored value, using empty collection", zap.Error(err))
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

// Save overwrites the key with the full sequence. Backend errors, including
// ErrQuotaExceeded, are returned to the caller.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}
