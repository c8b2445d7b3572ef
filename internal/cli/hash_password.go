package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/twin-backend/internal/auth"
	authsvc "github.com/heartmarshall/twin-backend/internal/service/auth"
)

// NewHashPasswordCommand creates the hash-password command, which prints a
// bcrypt hash for AUTH_ADMIN_PASSWORD_HASH. It needs no configuration.
func NewHashPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash of the admin password",
		Long: `Print a bcrypt hash of the admin password.

The password is taken from the argument, or from the first line of stdin
when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if password == "" {
				return errors.New("password must not be empty")
			}
			if len(password) > authsvc.MaxPasswordLen {
				return fmt.Errorf("password must be at most %d bytes", authsvc.MaxPasswordLen)
			}

			hash, err := auth.HashPassword(password, cost)
			if err != nil {
				return err
			}

			out := map[string]string{"hash": hash}
			return newPrinter(rootOpts, cmd.OutOrStdout()).emit(out, func(w io.Writer) {
				fmt.Fprintln(w, hash)
			})
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	return cmd
}
