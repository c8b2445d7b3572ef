package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	metricsrepo "github.com/heartmarshall/twin-backend/internal/adapter/postgres/metrics"
	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
)

// metricsRow is the printed form of a daily metrics row.
type metricsRow struct {
	Date         string    `json:"date"`
	Steps        int       `json:"steps"`
	EntryCount   int       `json:"entry_count"`
	CurrentMusic string    `json:"current_music"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toMetricsRow(m *domain.DailyMetrics) metricsRow {
	return metricsRow{
		Date:         m.Date.Format(seedDateLayout),
		Steps:        m.Steps,
		EntryCount:   m.EntryCount,
		CurrentMusic: m.CurrentMusic,
		UpdatedAt:    m.UpdatedAt,
	}
}

func printMetrics(p *printer, m *domain.DailyMetrics) error {
	if m == nil {
		return p.emit(nil, func(w io.Writer) { fmt.Fprintln(w, "no metrics for today") })
	}
	row := toMetricsRow(m)
	return p.emit(row, func(w io.Writer) {
		fmt.Fprintf(w, "%s  steps=%d entries=%d music=%q\n", row.Date, row.Steps, row.EntryCount, row.CurrentMusic)
	})
}

// NewMetricsCommand creates the metrics command group.
func NewMetricsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Read and write the daily metrics of the site",
	}
	cmd.AddCommand(newMetricsGetCommand(rootOpts))
	cmd.AddCommand(newMetricsSetCommand(rootOpts))
	return cmd
}

func newMetricsGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show today's metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			svc := metrics.NewService(env.logger, metricsrepo.New(env.pool, env.cfg.Site.Key), env.cfg.Site.Location)
			m, err := svc.GetToday(cmd.Context())
			if err != nil {
				return err
			}
			return printMetrics(newPrinter(rootOpts, cmd.OutOrStdout()), m)
		},
	}
}

// metricsSetFlags are the values of `metrics set`. Only flags given on the
// command line are written.
type metricsSetFlags struct {
	steps   int
	entries int
	music   string
}

func (f *metricsSetFlags) input(cmd *cobra.Command) metrics.UpsertInput {
	var in metrics.UpsertInput
	if cmd.Flags().Changed("steps") {
		in.Steps = &f.steps
	}
	if cmd.Flags().Changed("entries") {
		in.EntryCount = &f.entries
	}
	if cmd.Flags().Changed("music") {
		in.CurrentMusic = &f.music
	}
	return in
}

func newMetricsSetCommand(rootOpts *RootOptions) *cobra.Command {
	var f metricsSetFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Upsert today's metrics",
		Example: `  twinctl metrics set --steps 8200
  twinctl metrics set --music "Low - Words" --entries 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := f.input(cmd)
			if err := in.Validate(); err != nil {
				return err
			}

			env, err := rootOpts.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			svc := metrics.NewService(env.logger, metricsrepo.New(env.pool, env.cfg.Site.Key), env.cfg.Site.Location)
			m, err := svc.UpsertToday(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printMetrics(newPrinter(rootOpts, cmd.OutOrStdout()), m)
		},
	}

	cmd.Flags().IntVar(&f.steps, "steps", 0, "step count")
	cmd.Flags().IntVar(&f.entries, "entries", 0, "entry count")
	cmd.Flags().StringVar(&f.music, "music", "", "currently playing music")

	return cmd
}
