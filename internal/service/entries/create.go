package entries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Create stores a new entry for the site.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	e, err := s.entries.Create(ctx, input.normalize())
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("site", e.SiteKey),
		slog.String("entry_id", e.ID.String()),
		slog.String("source", e.Source),
		slog.Int("tags", len(e.Tags)),
	)

	return e, nil
}
