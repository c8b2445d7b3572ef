package entries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// List returns the site's entries, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	list, err := s.entries.List(ctx, domain.EntryFilter{Source: input.Source, Limit: input.Limit})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return list, nil
}

// Books returns the entries whose source is "book", newest first.
func (s *Service) Books(ctx context.Context, limit int) ([]domain.Entry, error) {
	return s.List(ctx, ListInput{Source: domain.SourceBook, Limit: limit})
}

// Protocols returns the entries whose source is "protocol", newest first.
func (s *Service) Protocols(ctx context.Context, limit int) ([]domain.Entry, error) {
	return s.List(ctx, ListInput{Source: domain.SourceProtocol, Limit: limit})
}

// Get returns a single entry of the site.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// Related returns the chapters and fragments linked to parentID, oldest first.
func (s *Service) Related(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error) {
	if parentID == uuid.Nil {
		return nil, domain.NewValidationError("parent_id", "required")
	}

	list, err := s.entries.ListRelated(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list related entries: %w", err)
	}
	return list, nil
}

// Counts holds the entry totals shown on the overview.
type Counts struct {
	Total     int `json:"total"`
	Books     int `json:"books"`
	Protocols int `json:"protocols"`
}

// Count returns the entry totals of the site.
func (s *Service) Count(ctx context.Context) (Counts, error) {
	var (
		c   Counts
		err error
	)
	if c.Total, err = s.entries.Count(ctx, ""); err != nil {
		return Counts{}, fmt.Errorf("count entries: %w", err)
	}
	if c.Books, err = s.entries.Count(ctx, domain.SourceBook); err != nil {
		return Counts{}, fmt.Errorf("count books: %w", err)
	}
	if c.Protocols, err = s.entries.Count(ctx, domain.SourceProtocol); err != nil {
		return Counts{}, fmt.Errorf("count protocols: %w", err)
	}
	return c, nil
}
