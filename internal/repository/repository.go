package repository

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrNoNextStatus   = errors.New("report status cannot be advanced")
)

type settings struct {
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*settings)

// WithClock replaces the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
