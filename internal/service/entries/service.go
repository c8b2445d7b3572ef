package entries

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Input limits.
const (
	MaxLimit      = 500
	MaxContentLen = 20000
	MaxTags       = 32
	MaxTagLen     = 64
	MaxSourceLen  = 64
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListRelated(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error)
	Count(ctx context.Context, source string) (int, error)
	Create(ctx context.Context, in domain.NewEntry) (*domain.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service provides entry operations for the configured site. The site is
// fixed by the repository it is constructed with.
type Service struct {
	entries entryRepo
	log     *slog.Logger
}

// NewService creates a new entries service.
func NewService(log *slog.Logger, entries entryRepo) *Service {
	return &Service{
		entries: entries,
		log:     log.With("service", "entries"),
	}
}
