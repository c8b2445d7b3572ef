package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// MaxMusicLen caps the "now playing" label.
const MaxMusicLen = 200

type metricsRepo interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyMetrics, error)
	Upsert(ctx context.Context, date time.Time, u domain.MetricsUpdate) (*domain.DailyMetrics, error)
}

// Service reads and writes today's metrics row of the configured site.
type Service struct {
	metrics metricsRepo
	loc     *time.Location
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new metrics service. "Today" is the calendar date in loc.
func NewService(log *slog.Logger, metrics metricsRepo, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		metrics: metrics,
		loc:     loc,
		now:     time.Now,
		log:     log.With("service", "metrics"),
	}
}

// Today returns the current calendar date in the site timezone, as midnight UTC.
func (s *Service) Today() time.Time {
	return Today(s.now(), s.loc)
}

// Today returns the calendar date of now in loc, as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
