package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pos-terminal/internal/importer"
	categoryrepo "pos-terminal/internal/repository/category"
	productrepo "pos-terminal/internal/repository/product"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import products from a CSV file",
	Long: `Import products from a CSV file with the header

  id,name,sku,category,price,cost,stock,isService,image

Rows are upserted by id. Unknown categories are created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		pool, err := requirePool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger), categoryrepo.NewPostgres(pool), logger)
		count, err := imp.Run(ctx)
		if err != nil {
			return fmt.Errorf("import %s: %w", importFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", count)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV file to import")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
