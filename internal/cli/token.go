package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"igpt/internal/middleware"
)

// TokenCmd mints a bearer token signed with JWT_SECRET, for local testing.
func TokenCmd() *cobra.Command {
	var (
		role   string
		locale string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a signed API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			tok, err := middleware.SignJWT(secret, middleware.TokenClaims{
				Sub:    args[0],
				Role:   role,
				Locale: locale,
				Exp:    time.Now().Add(ttl).Unix(),
				Issuer: "igptctl",
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "user", "token role (user or admin)")
	cmd.Flags().StringVar(&locale, "locale", "", "preferred language claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
