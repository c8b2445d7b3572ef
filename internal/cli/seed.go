package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/twin-backend/internal/adapter/postgres"
	entryrepo "github.com/heartmarshall/twin-backend/internal/adapter/postgres/entry"
	metricsrepo "github.com/heartmarshall/twin-backend/internal/adapter/postgres/metrics"
	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
)

const seedDateLayout = "2006-01-02"

// SeedFile is the YAML document accepted by `twinctl seed`.
type SeedFile struct {
	Entries []SeedEntry   `yaml:"entries"`
	Metrics []SeedMetrics `yaml:"metrics"`
}

// SeedEntry is one entry to insert. Ref names the entry inside the file so
// that a later entry can point at it through Parent.
type SeedEntry struct {
	Ref      string         `yaml:"ref"`
	Content  string         `yaml:"content"`
	Source   string         `yaml:"source"`
	Tags     []string       `yaml:"tags"`
	Metadata map[string]any `yaml:"metadata"`
	Parent   string         `yaml:"parent"`
}

// SeedMetrics is one daily metrics row. Omitted fields are left untouched.
type SeedMetrics struct {
	Date         string  `yaml:"date"`
	Steps        *int    `yaml:"steps"`
	EntryCount   *int    `yaml:"entry_count"`
	CurrentMusic *string `yaml:"current_music"`
}

// SeedResult summarizes what Seed wrote.
type SeedResult struct {
	Entries int `json:"entries"`
	Metrics int `json:"metrics"`
}

// ParseSeedFile decodes and checks a seed document.
func ParseSeedFile(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	refs := make(map[string]struct{}, len(f.Entries))
	for i, e := range f.Entries {
		if e.Parent != "" {
			if _, ok := refs[e.Parent]; !ok {
				return nil, fmt.Errorf("entries[%d]: parent %q must name an earlier ref", i, e.Parent)
			}
		}
		if e.Ref != "" {
			if _, dup := refs[e.Ref]; dup {
				return nil, fmt.Errorf("entries[%d]: duplicate ref %q", i, e.Ref)
			}
			refs[e.Ref] = struct{}{}
		}
	}
	for i, m := range f.Metrics {
		if _, err := time.Parse(seedDateLayout, m.Date); err != nil {
			return nil, fmt.Errorf("metrics[%d]: date %q: want YYYY-MM-DD", i, m.Date)
		}
	}
	return &f, nil
}

// Seed writes f for site in a single transaction. Entries go through the
// entries service so they are validated the same way as API writes.
func Seed(ctx context.Context, logger *slog.Logger, db postgres.DB, site domain.SiteKey, f *SeedFile) (SeedResult, error) {
	var res SeedResult

	entrySvc := entries.NewService(logger, entryrepo.New(db, site))
	metrics := metricsrepo.New(db, site)

	err := postgres.NewTxManager(db).RunInTx(ctx, func(ctx context.Context) error {
		ids := make(map[string]string, len(f.Entries))
		for i, e := range f.Entries {
			meta := make(map[string]any, len(e.Metadata)+1)
			for k, v := range e.Metadata {
				meta[k] = v
			}
			if e.Parent != "" {
				meta[domain.MetaParentID] = ids[e.Parent]
			}

			created, err := entrySvc.Create(ctx, entries.CreateInput{
				Content:  e.Content,
				Tags:     e.Tags,
				Source:   e.Source,
				Metadata: meta,
			})
			if err != nil {
				return fmt.Errorf("entries[%d]: %w", i, err)
			}
			if e.Ref != "" {
				ids[e.Ref] = created.ID.String()
			}
			res.Entries++
		}

		for i, m := range f.Metrics {
			date, err := time.Parse(seedDateLayout, m.Date)
			if err != nil {
				return fmt.Errorf("metrics[%d]: %w", i, err)
			}
			_, err = metrics.Upsert(ctx, date, domain.MetricsUpdate{
				Steps:        m.Steps,
				EntryCount:   m.EntryCount,
				CurrentMusic: m.CurrentMusic,
			})
			if err != nil {
				return fmt.Errorf("metrics[%d]: %w", i, err)
			}
			res.Metrics++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load entries and metrics from a YAML file",
		Long: `Load entries and daily metrics for the configured site from a YAML file.

Everything is written in one transaction: either the whole file is applied
or nothing is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer fh.Close()

			f, err := ParseSeedFile(fh)
			if err != nil {
				return err
			}

			env, err := rootOpts.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			res, err := Seed(cmd.Context(), env.logger, env.pool, env.cfg.Site.Key, f)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			return newPrinter(rootOpts, cmd.OutOrStdout()).emit(res, func(w io.Writer) {
				fmt.Fprintf(w, "seeded %d entries and %d metrics rows for %s\n", res.Entries, res.Metrics, env.cfg.Site.Key)
			})
		},
	}
}
