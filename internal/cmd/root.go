package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"pos-terminal/internal/config"
)

var (
	v      = viper.New()
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "Point-of-sale till service",
	Long: `pos runs a single point-of-sale till: a product catalog, a cart priced with
per-line discounts and sales tax, and a checkout flow that records completed sales.

Configuration comes from pos.yaml and POS_ prefixed environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded
		l, err := cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-dsn", "", "Postgres connection string; empty runs on in-memory stores")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("db_dsn", flags.Lookup("db-dsn"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
