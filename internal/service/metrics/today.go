package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// GetToday returns today's metrics row, or domain.ErrNotFound when nothing
// was recorded yet.
func (s *Service) GetToday(ctx context.Context) (*domain.DailyMetrics, error) {
	m, err := s.metrics.GetByDate(ctx, s.Today())
	if err != nil {
		return nil, fmt.Errorf("get today metrics: %w", err)
	}
	return m, nil
}

// UpsertToday creates today's row or overwrites its provided fields.
func (s *Service) UpsertToday(ctx context.Context, input UpsertInput) (*domain.DailyMetrics, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	today := s.Today()
	m, err := s.metrics.Upsert(ctx, today, input.toUpdate())
	if err != nil {
		return nil, fmt.Errorf("upsert today metrics: %w", err)
	}

	s.log.InfoContext(ctx, "metrics updated",
		slog.String("site", m.SiteKey),
		slog.String("date", today.Format(time.DateOnly)),
		slog.Int("steps", m.Steps),
		slog.Int("entry_count", m.EntryCount),
	)

	return m, nil
}
