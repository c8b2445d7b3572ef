package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	entryrepo "github.com/heartmarshall/twin-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/twin-backend/internal/domain"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
)

const previewLen = 60

// entryRow is the printed form of an entry.
type entryRow struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Tags      []string       `json:"tags"`
	CreatedAt time.Time      `json:"created_at"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
}

func toEntryRows(list []domain.Entry) []entryRow {
	rows := make([]entryRow, 0, len(list))
	for _, e := range list {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		rows = append(rows, entryRow{
			ID:        e.ID.String(),
			Source:    e.Source,
			Tags:      tags,
			CreatedAt: e.CreatedAt,
			Content:   e.Content,
			Metadata:  e.Metadata,
		})
	}
	return rows
}

// preview returns the first line of s cut to n runes.
func preview(s string, n int) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// NewEntriesCommand creates the entries command group.
func NewEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Inspect and delete entries of the site",
	}
	cmd.AddCommand(newEntriesListCommand(rootOpts))
	cmd.AddCommand(newEntriesDeleteCommand(rootOpts))
	return cmd
}

func newEntriesListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		source string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			svc := entries.NewService(env.logger, entryrepo.New(env.pool, env.cfg.Site.Key))
			list, err := svc.List(cmd.Context(), entries.ListInput{Source: source, Limit: limit})
			if err != nil {
				return err
			}

			rows := toEntryRows(list)
			return newPrinter(rootOpts, cmd.OutOrStdout()).emit(rows, func(w io.Writer) {
				if len(rows) == 0 {
					fmt.Fprintln(w, "no entries")
					return
				}
				for _, r := range rows {
					fmt.Fprintf(w, "%s  %-10s %s  %s\n",
						r.ID, r.Source, r.CreatedAt.Format(time.DateTime), preview(r.Content, previewLen))
				}
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "only entries with this source")
	cmd.Flags().IntVar(&limit, "limit", 50, fmt.Sprintf("maximum number of entries (0 = all, max %d)", entries.MaxLimit))

	return cmd
}

func newEntriesDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id %q: %w", args[0], err)
			}

			env, err := rootOpts.openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			svc := entries.NewService(env.logger, entryrepo.New(env.pool, env.cfg.Site.Key))
			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}

			out := map[string]string{"deleted": id.String()}
			return newPrinter(rootOpts, cmd.OutOrStdout()).emit(out, func(w io.Writer) {
				fmt.Fprintf(w, "deleted %s\n", id)
			})
		},
	}
}
