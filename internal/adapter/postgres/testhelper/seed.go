package testhelper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.New().String()[:13], "-", "")
}

// NewSite returns a site key no other test uses, so tests sharing the
// container never see each other's rows.
func NewSite(t *testing.T, prefix string) domain.SiteKey {
	t.Helper()
	return domain.MustParseSiteKey(prefix + "_" + uniqueSuffix())
}

// EntryOpts overrides the defaults used by SeedEntry.
type EntryOpts struct {
	Content   string
	Tags      []string
	Source    string
	Metadata  map[string]any
	CreatedAt time.Time
}

// SeedEntry inserts an entry for site directly, bypassing the repository.
// Zero CreatedAt means now.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, site domain.SiteKey, opts EntryOpts) domain.Entry {
	t.Helper()
	ctx := context.Background()

	if opts.Content == "" {
		opts.Content = "seeded entry " + uniqueSuffix()
	}
	if opts.Tags == nil {
		opts.Tags = []string{}
	}
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = time.Now()
	}

	e := domain.Entry{
		ID:        uuid.New(),
		SiteKey:   site.String(),
		Content:   opts.Content,
		Tags:      opts.Tags,
		Source:    opts.Source,
		CreatedAt: opts.CreatedAt.UTC().Truncate(time.Microsecond),
		Metadata:  opts.Metadata,
	}

	var meta any
	if len(e.Metadata) > 0 {
		meta = e.Metadata
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO twin.entries (id, site_key, content, tags, source, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.SiteKey, e.Content, e.Tags, e.Source, meta, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert: %v", err)
	}

	return e
}

// SeedMetrics inserts a daily metrics row for site and date.
func SeedMetrics(t *testing.T, pool *pgxpool.Pool, site domain.SiteKey, date time.Time, steps, entryCount int, music string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO twin.metrics (site_key, date, steps, entry_count, current_music)
		 VALUES ($1, $2, $3, $4, $5)`,
		site.String(), date, steps, entryCount, music,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMetrics insert: %v", err)
	}
}

// CountRows counts rows of a twin table for site, ignoring RLS.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, site domain.SiteKey) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM twin.`+table+` WHERE site_key = $1`, site.String(),
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
