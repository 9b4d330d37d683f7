package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pos-terminal/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := requirePool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := migrate.Apply(cmd.Context(), pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := requirePool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := migrate.Rollback(cmd.Context(), pool); err != nil {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		logger.Info("migrations rolled back")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := requirePool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		version, dirty, err := migrate.Version(cmd.Context(), pool)
		if err != nil {
			return err
		}
		logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		fmt.Fprintf(cmd.OutOrStdout(), "%d dirty=%t\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
