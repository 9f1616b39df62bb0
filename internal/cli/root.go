// Package cli implements igptctl, the operator command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"igpt/internal/infra"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
	heading  = color.New(color.Bold, color.FgCyan)
	dim      = color.New(color.Faint)
)

// RootCmd assembles the igptctl command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "igptctl",
		Short:         "Operator tools for the iGPT generation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(CatalogCmd())
	root.AddCommand(ComposeCmd())
	root.AddCommand(CreditsCmd())
	root.AddCommand(PlanCmd())
	root.AddCommand(ProviderKeyCmd())
	root.AddCommand(TokenCmd())
	return root
}

// withDatabase opens a short-lived pool from DATABASE_URL for one command.
func withDatabase(ctx context.Context, fn func(sql infra.SQLExecutor) error) error {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "igptctl").Logger()
	return fn(infra.NewSQLRunner(pool, logger))
}
