// Package metrics implements the site-scoped repository for daily metrics.
package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/twin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/twin-backend/internal/domain"
)

const table = "twin.metrics"

var columns = []string{"site_key", "date", "steps", "entry_count", "current_music", "created_at", "updated_at"}

type row struct {
	SiteKey      string    `db:"site_key"`
	Date         time.Time `db:"date"`
	Steps        int       `db:"steps"`
	EntryCount   int       `db:"entry_count"`
	CurrentMusic string    `db:"current_music"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.DailyMetrics {
	return &domain.DailyMetrics{
		SiteKey:      r.SiteKey,
		Date:         r.Date,
		Steps:        r.Steps,
		EntryCount:   r.EntryCount,
		CurrentMusic: r.CurrentMusic,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Repo provides daily metrics persistence for a single site.
type Repo struct {
	db   postgres.DB
	site domain.SiteKey
}

// New creates a new metrics repository bound to site.
func New(db postgres.DB, site domain.SiteKey) *Repo {
	return &Repo{db: db, site: site}
}

// dateOnly drops the clock part, keeping the calendar date of t in its own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ref(site domain.SiteKey, date time.Time) string {
	return site.String() + "/" + date.Format(time.DateOnly)
}

// GetByDate returns the metrics row for date, or domain.ErrNotFound.
func (r *Repo) GetByDate(ctx context.Context, date time.Time) (*domain.DailyMetrics, error) {
	date = dateOnly(date)

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"site_key": r.site.String(), "date": date})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get metrics query: %w", err)
	}

	var got row
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		return pgxscan.Get(ctx, q, &got, sqlStr, args...)
	})
	if err != nil {
		return nil, postgres.MapError(err, "metrics", ref(r.site, date))
	}

	return got.toDomain(), nil
}

// Upsert creates the row for date or overwrites the provided fields of the
// existing one in a single statement. Fields left nil insert as zero values
// and are kept on conflict. updated_at is always refreshed.
func (r *Repo) Upsert(ctx context.Context, date time.Time, u domain.MetricsUpdate) (*domain.DailyMetrics, error) {
	date = dateOnly(date)

	var (
		steps, entryCount int
		music             string
		set               []string
	)
	if u.Steps != nil {
		steps = *u.Steps
		set = append(set, "steps = EXCLUDED.steps")
	}
	if u.EntryCount != nil {
		entryCount = *u.EntryCount
		set = append(set, "entry_count = EXCLUDED.entry_count")
	}
	if u.CurrentMusic != nil {
		music = *u.CurrentMusic
		set = append(set, "current_music = EXCLUDED.current_music")
	}
	set = append(set, "updated_at = clock_timestamp()")

	query := postgres.Builder().
		Insert(table).
		Columns("site_key", "date", "steps", "entry_count", "current_music").
		Values(r.site.String(), date, steps, entryCount, music).
		Suffix("ON CONFLICT (site_key, date) DO UPDATE SET " + strings.Join(set, ", ") +
			" RETURNING " + strings.Join(columns, ", "))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert metrics query: %w", err)
	}

	var got row
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		return pgxscan.Get(ctx, q, &got, sqlStr, args...)
	})
	if err != nil {
		return nil, postgres.MapError(err, "metrics", ref(r.site, date))
	}

	return got.toDomain(), nil
}
