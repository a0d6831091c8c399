package limiter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Actions
const (
	ActionReport = "report"
	ActionSignup = "signup"
)

type ActionConfig struct {
	Limit  int64
	Window time.Duration
}

// Counter increments a windowed counter. The first increment of a key arms
// its expiry; later ones leave it alone.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type Limiter struct {
	counter Counter
	limits  map[string]ActionConfig
	logger  *zap.Logger
	now     func() time.Time
}

type CheckResult struct {
	Allowed   bool  `json:"allowed"`
	Remaining int64 `json:"remaining"`
	ResetAt   int64 `json:"reset_at"`
	Limit     int64 `json:"limit"`
}

// NewLimiter builds a limiter for the given per-action limits. A limit of
// zero or less disables limiting for that action.
func NewLimiter(counter Counter, limits map[string]ActionConfig, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{counter: counter, limits: limits, logger: logger, now: time.Now}
}

// Check counts one attempt of action by clientID. Counter failures let the
// request through.
func (l *Limiter) Check(ctx context.Context, clientID, action string) *CheckResult {
	config, ok := l.limits[action]
	if !ok || config.Limit <= 0 {
		return &CheckResult{Allowed: true, Remaining: -1}
	}

	result, err := l.check(ctx, clientID, action, config)
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request",
			zap.String("action", action), zap.Error(err))
		return &CheckResult{Allowed: true, Remaining: config.Limit, Limit: config.Limit}
	}
	return result
}

func (l *Limiter) check(ctx context.Context, clientID, action string, config ActionConfig) (*CheckResult, error) {
	key := fmt.Sprintf("rate:%s:%s", clientID, action)

	count, err := l.counter.Incr(ctx, key, config.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to increment counter: %w", err)
	}

	ttl, err := l.counter.TTL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get TTL: %w", err)
	}
	if ttl < 0 {
		ttl = config.Window
	}

	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &CheckResult{
		Allowed:   count <= config.Limit,
		Remaining: remaining,
		ResetAt:   l.now().Add(ttl).Unix(),
		Limit:     config.Limit,
	}, nil
}

// Limits returns the configured limits keyed by action.
func (l *Limiter) Limits() map[string]ActionConfig {
	out := make(map[string]ActionConfig, len(l.limits))
	for k, v := range l.limits {
		out[k] = v
	}
	return out
}
