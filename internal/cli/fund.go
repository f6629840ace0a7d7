package cli

import (
	"fmt"
	"log"
	"strconv"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"quiz-arena-service/internal/config"
	"quiz-arena-service/internal/domain"
	"quiz-arena-service/internal/infra/postgres"
)

// NewFundCmd credits tokens to an account in the Postgres ledger.
func NewFundCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fund <account> <amount>",
		Short: "Credit tokens to an account in the Postgres ledger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[1], 10, 63)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			ctx := cmd.Context()
			if err := runMigrationsWithConfig(ctx, cfg); err != nil {
				return err
			}
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			ledger := postgres.NewLedger(pool, domain.Amount(cfg.Ledger.ExistentialDeposit))
			account := domain.AccountID(args[0])
			if err := ledger.Deposit(ctx, account, domain.Amount(amount)); err != nil {
				return err
			}
			balance, err := ledger.FreeBalance(ctx, account)
			if err != nil {
				return err
			}
			log.Printf("funded %s with %d, balance now %d", account, amount, balance)
			return nil
		},
	}
}
