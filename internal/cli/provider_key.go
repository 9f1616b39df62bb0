package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"igpt/internal/infra"
	"igpt/internal/infra/credentials"
)

func ProviderKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider-key",
		Short: "Manage provider API keys stored in the database",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <" + strings.Join(credentials.KnownProviders, "|") + "> [key]",
		Short: "Store an API key; falls back to <PROVIDER>_API_KEY from the environment",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := strings.ToLower(strings.TrimSpace(args[0]))
			var key string
			if len(args) == 2 {
				key = args[1]
			} else {
				key = os.Getenv(strings.ToUpper(provider) + "_API_KEY")
			}
			return withDatabase(cmd.Context(), func(sql infra.SQLExecutor) error {
				if err := credentials.NewStore(sql).SetToken(cmd.Context(), provider, key); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", failMark, err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s API key stored\n", okMark, strings.ToUpper(provider))
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List providers with a stored key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(sql infra.SQLExecutor) error {
				entries, err := credentials.NewStore(sql).List(cmd.Context())
				if err != nil {
					return err
				}
				stored := make(map[string]credentials.Entry, len(entries))
				for _, e := range entries {
					stored[e.Provider] = e
				}
				for _, p := range credentials.KnownProviders {
					if e, ok := stored[p]; ok {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %s\n", okMark, p, dim.Sprintf("updated %s", e.UpdatedAt.Format("2006-01-02 15:04")))
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %s\n", failMark, p, dim.Sprint("not stored"))
					}
				}
				return nil
			})
		},
	})
	return cmd
}
