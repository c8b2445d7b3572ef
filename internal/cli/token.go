package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/twin-backend/internal/auth"
)

type tokenOutput struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewTokenCommand creates the token command. It mints the same admin token
// POST /api/auth/login returns, without a password.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin access token for the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.AccessTokenTTL
			}

			jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl)
			token, err := jwt.GenerateAccessToken(cfg.Site.Key.String(), auth.RoleAdmin)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}

			out := tokenOutput{
				AccessToken: token,
				TokenType:   "Bearer",
				ExpiresAt:   time.Now().Add(ttl).UTC(),
			}
			return newPrinter(rootOpts, cmd.OutOrStdout()).emit(out, func(w io.Writer) {
				fmt.Fprintln(w, out.AccessToken)
			})
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.access_token_ttl)")

	return cmd
}
