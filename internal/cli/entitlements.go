package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"igpt/internal/adapter/repo"
	"igpt/internal/entitlement"
	"igpt/internal/infra"
)

func CreditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Inspect and grant download credits",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <user-id>",
		Short: "Show a user's credits and plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEntitlements(cmd, func(svc *entitlement.Service) (entitlement.Entitlement, error) {
				return svc.Get(cmd.Context(), args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "grant <user-id> <credits>",
		Short: "Add paid credits to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("credits must be a number: %w", err)
			}
			return withEntitlements(cmd, func(svc *entitlement.Service) (entitlement.Entitlement, error) {
				return svc.Grant(cmd.Context(), args[0], n)
			})
		},
	})
	return cmd
}

func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage subscription plans",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <user-id> <free|credits|unlimited>",
		Short: "Change a user's plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := entitlement.ParseSubscription(args[1])
			if err != nil {
				return err
			}
			return withEntitlements(cmd, func(svc *entitlement.Service) (entitlement.Entitlement, error) {
				return svc.Subscribe(cmd.Context(), args[0], plan)
			})
		},
	})
	return cmd
}

func withEntitlements(cmd *cobra.Command, fn func(*entitlement.Service) (entitlement.Entitlement, error)) error {
	return withDatabase(cmd.Context(), func(sql infra.SQLExecutor) error {
		logger := infra.NewLogger("cli")
		svc := entitlement.NewService(repo.NewEntitlementRepository(sql), getFreeCredits(), logger)
		e, err := fn(svc)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", failMark, err)
			return err
		}
		printEntitlement(cmd, e)
		return nil
	})
}

func printEntitlement(cmd *cobra.Command, e entitlement.Entitlement) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", okMark, e.UserID)
	fmt.Fprintf(out, "  plan:         %s\n", e.Subscription)
	fmt.Fprintf(out, "  free credits: %d\n", e.FreeCredits)
	fmt.Fprintf(out, "  paid credits: %d\n", e.PaidCredits)
	if e.Unlimited() {
		fmt.Fprintf(out, "  %s\n", dim.Sprint("unlimited downloads"))
	}
}

func getFreeCredits() int {
	if v, err := strconv.Atoi(os.Getenv("FREE_CREDITS")); err == nil && v >= 0 {
		return v
	}
	return entitlement.DefaultFreeCredits
}
