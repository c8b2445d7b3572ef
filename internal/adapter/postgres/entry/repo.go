// Package entry implements the site-scoped repository for archive entries.
package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/twin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/twin-backend/internal/domain"
)

const table = "twin.entries"

var columns = []string{"id", "site_key", "content", "tags", "source", "created_at", "metadata"}

// row is the scan target for twin.entries.
type row struct {
	ID        uuid.UUID      `db:"id"`
	SiteKey   string         `db:"site_key"`
	Content   string         `db:"content"`
	Tags      []string       `db:"tags"`
	Source    string         `db:"source"`
	CreatedAt time.Time      `db:"created_at"`
	Metadata  map[string]any `db:"metadata"`
}

func (r row) toDomain() domain.Entry {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Entry{
		ID:        r.ID,
		SiteKey:   r.SiteKey,
		Content:   r.Content,
		Tags:      tags,
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
		Metadata:  r.Metadata,
	}
}

func toDomain(rows []row) []domain.Entry {
	out := make([]domain.Entry, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Repo provides entry persistence for a single site.
// Every statement carries an explicit site_key predicate and runs inside
// a site scope, so the RLS policies confine it as well.
type Repo struct {
	db   postgres.DB
	site domain.SiteKey
}

// New creates a new entry repository bound to site.
func New(db postgres.DB, site domain.SiteKey) *Repo {
	return &Repo{db: db, site: site}
}

// Site returns the site this repository is bound to.
func (r *Repo) Site() domain.SiteKey {
	return r.site
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns the site's entries, newest first. An empty result is an
// empty, non-nil slice.
func (r *Repo) List(ctx context.Context, f domain.EntryFilter) ([]domain.Entry, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"site_key": r.site.String()})
	if f.Source != "" {
		query = query.Where(sq.Eq{"source": f.Source})
	}
	query = query.OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}

	return r.selectEntries(ctx, query, "list entries")
}

// GetByID returns the entry with id. Entries of other sites are reported
// as domain.ErrNotFound, the same as missing ones.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "site_key": r.site.String()})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get entry query: %w", err)
	}

	var got row
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		return pgxscan.Get(ctx, q, &got, sqlStr, args...)
	})
	if err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}

	e := got.toDomain()
	return &e, nil
}

// ListRelated returns the entries that point at parentID, either through
// metadata.parent_id, metadata.book_id or a tag equal to the id, oldest first.
func (r *Repo) ListRelated(ctx context.Context, parentID uuid.UUID) ([]domain.Entry, error) {
	p := parentID.String()

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"site_key": r.site.String()}).
		Where(sq.Or{
			sq.Expr("metadata ->> '"+domain.MetaParentID+"' = ?", p),
			sq.Expr("metadata ->> '"+domain.MetaBookID+"' = ?", p),
			sq.Expr("? = ANY(tags)", p),
		}).
		OrderBy("created_at ASC", "id ASC")

	return r.selectEntries(ctx, query, "list related entries")
}

// Count returns the number of the site's entries, optionally only those with source.
func (r *Repo) Count(ctx context.Context, source string) (int, error) {
	query := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(sq.Eq{"site_key": r.site.String()})
	if source != "" {
		query = query.Where(sq.Eq{"source": source})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count entries query: %w", err)
	}

	var n int
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		return q.QueryRow(ctx, sqlStr, args...).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}

	return n, nil
}

func (r *Repo) selectEntries(ctx context.Context, query sq.SelectBuilder, op string) ([]domain.Entry, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []row
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		return pgxscan.Select(ctx, q, &rows, sqlStr, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toDomain(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new entry. The site key always comes from the repository;
// the id and created_at are assigned by the database.
func (r *Repo) Create(ctx context.Context, in domain.NewEntry) (*domain.Entry, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	// NULL instead of a JSON null for absent metadata.
	var meta any
	if len(in.Metadata) > 0 {
		meta = in.Metadata
	}

	query := postgres.Builder().
		Insert(table).
		Columns("site_key", "content", "tags", "source", "metadata").
		Values(r.site.String(), in.Content, tags, in.Source, meta).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create entry query: %w", err)
	}

	var created row
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		return pgxscan.Get(ctx, q, &created, sqlStr, args...)
	})
	if err != nil {
		return nil, postgres.MapError(err, "entry", "new")
	}

	e := created.toDomain()
	return &e, nil
}

// Delete removes the entry with id. It returns domain.ErrNotFound when no
// entry of this site has that id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id, "site_key": r.site.String()})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build delete entry query: %w", err)
	}

	var affected int64
	err = postgres.WithSite(ctx, r.db, r.site, func(ctx context.Context, q postgres.Querier) error {
		tag, err := q.Exec(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}

	if affected == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
