package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/twin-backend/internal/adapter/postgres"
)

// migrationRow is one line of migrate output.
type migrationRow struct {
	Version   int64      `json:"version"`
	File      string     `json:"file"`
	State     string     `json:"state"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
	Duration  string     `json:"duration,omitempty"`
}

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), rootOpts, func(p *goose.Provider) error {
				results, err := p.Up(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				return printResults(newPrinter(rootOpts, cmd.OutOrStdout()), results)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), rootOpts, func(p *goose.Provider) error {
				result, err := p.Down(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				return printResults(newPrinter(rootOpts, cmd.OutOrStdout()), []*goose.MigrationResult{result})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), rootOpts, func(p *goose.Provider) error {
				statuses, err := p.Status(cmd.Context())
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				return printStatuses(newPrinter(rootOpts, cmd.OutOrStdout()), statuses)
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, opts *RootOptions, fn func(p *goose.Provider) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	db, err := postgres.OpenSQL(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	provider, err := postgres.NewMigrator(db)
	if err != nil {
		return err
	}
	return fn(provider)
}

func resultRows(results []*goose.MigrationResult) []migrationRow {
	rows := make([]migrationRow, 0, len(results))
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		rows = append(rows, migrationRow{
			Version:  r.Source.Version,
			File:     filepath.Base(r.Source.Path),
			State:    r.Direction,
			Duration: r.Duration.Round(time.Millisecond).String(),
		})
	}
	return rows
}

func printResults(p *printer, results []*goose.MigrationResult) error {
	rows := resultRows(results)
	return p.emit(rows, func(w io.Writer) {
		if len(rows) == 0 {
			fmt.Fprintln(w, "no migrations to apply")
			return
		}
		for _, r := range rows {
			fmt.Fprintf(w, "%-5s %05d %s (%s)\n", r.State, r.Version, r.File, r.Duration)
		}
	})
}

func statusRows(statuses []*goose.MigrationStatus) []migrationRow {
	rows := make([]migrationRow, 0, len(statuses))
	for _, s := range statuses {
		if s == nil || s.Source == nil {
			continue
		}
		row := migrationRow{
			Version: s.Source.Version,
			File:    filepath.Base(s.Source.Path),
			State:   string(s.State),
		}
		if !s.AppliedAt.IsZero() {
			at := s.AppliedAt
			row.AppliedAt = &at
		}
		rows = append(rows, row)
	}
	return rows
}

func printStatuses(p *printer, statuses []*goose.MigrationStatus) error {
	rows := statusRows(statuses)
	return p.emit(rows, func(w io.Writer) {
		for _, r := range rows {
			applied := "-"
			if r.AppliedAt != nil {
				applied = r.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%05d %-9s %-25s %s\n", r.Version, r.State, applied, r.File)
		}
	})
}
