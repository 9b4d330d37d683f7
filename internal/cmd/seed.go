package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pos-terminal/internal/migrate"
	"pos-terminal/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog and customers into Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := requirePool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		return seed.ApplyPostgres(ctx, pool, logger)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
