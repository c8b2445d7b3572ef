package postgres

import (
	"context"
	"fmt"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// setSiteSQL scopes the row-level-security policies to one site for the
// rest of the current transaction.
const setSiteSQL = `SELECT set_config('app.site_key', $1, true)`

// WithSite runs fn inside a transaction whose RLS scope is set to site.
// An existing transaction in ctx is reused. The zero SiteKey fails closed
// before any statement reaches the database.
func WithSite(ctx context.Context, db DB, site domain.SiteKey, fn func(ctx context.Context, q Querier) error) error {
	if site.IsZero() {
		return fmt.Errorf("site scope: %w", &domain.ConfigurationError{
			Key:    domain.SiteKeyEnv,
			Reason: "is not set",
		})
	}

	return runInTx(ctx, db, func(ctx context.Context) error {
		q := QuerierFromCtx(ctx, db)
		if _, err := q.Exec(ctx, setSiteSQL, site.String()); err != nil {
			return fmt.Errorf("set site scope: %w", err)
		}
		return fn(ctx, q)
	})
}
