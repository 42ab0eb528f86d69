package quota

import (
	"context"
	"time"
)

const keyPrefix = "smartdrive:quota:"

// Counter is the storage behind the guard. Store implements it.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Service enforces a daily turn allowance per session.
type Service struct {
	counter Counter
	limit   int
	now     func() time.Time
}

// NewService creates a guard allowing limit turns per session per UTC day.
func NewService(counter Counter, limit int) *Service {
	if limit <= 0 {
		limit = DefaultTurnsPerDay
	}
	return &Service{counter: counter, limit: limit, now: time.Now}
}

// Use consumes one turn for sessionID.
// Returns ErrQuotaExceeded once the day's allowance is spent.
func (s *Service) Use(ctx context.Context, sessionID string) error {
	now := s.now().UTC()
	key := keyPrefix + now.Format("2006-01-02") + ":" + sessionID

	n, err := s.counter.Incr(ctx, key, untilNextDay(now)+time.Hour)
	if err != nil {
		return err
	}
	if n > int64(s.limit) {
		return ErrQuotaExceeded
	}
	return nil
}

func untilNextDay(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}
