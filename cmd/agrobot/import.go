package main

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Andrela2025/Agro-Conecta/internal/repository"
)

const importBatchSize = 200

func importCmd(opts *globalOptions) *cobra.Command {
	var table string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the CSV dataset into a database table",
		Long: `Load the CSV dataset and insert its lots into a table of the configured
database (DB_DRIVER, DATABASE_URL). Set DATASET_TABLE to serve from it afterwards.
A table that already holds lots is only overwritten with --replace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.cfg.LedgerEnabled() {
				return errors.New("no database configured: set DATABASE_URL")
			}
			opts.cfg.Dataset.Table = ""

			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if err := a.Repo.EnsureLotTable(ctx, table); err != nil {
				return err
			}
			existing, err := a.Repo.CountLots(ctx, table)
			if err != nil {
				return err
			}
			if existing > 0 && !replace {
				return fmt.Errorf("%w: %s already holds %d lots, use --replace to overwrite them",
					repository.ErrTableNotEmpty, table, existing)
			}
			lots := a.Store.Lots()
			bar := progressbar.NewOptions(len(lots),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing lots"),
			)

			if len(lots) == 0 && replace {
				if _, err := a.Repo.ImportLots(ctx, table, nil, true); err != nil {
					return fmt.Errorf("failed to clear lots: %w", err)
				}
			}

			n := 0
			for start := 0; start < len(lots); start += importBatchSize {
				end := min(start+importBatchSize, len(lots))
				// the first batch clears the table in its own transaction
				imported, err := a.Repo.ImportLots(ctx, table, lots[start:end], replace && start == 0)
				if err != nil {
					return fmt.Errorf("failed to import lots: %w", err)
				}
				n += imported
				_ = bar.Add(imported)
			}
			_ = bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lots into %s\n", n, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "coffee_lots", "destination table")
	cmd.Flags().BoolVar(&replace, "replace", false, "delete the lots already in the table before importing")
	return cmd
}
