package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
	"github.com/Andrela2025/Agro-Conecta/internal/service"
)

func buyCmd(opts *globalOptions) *cobra.Command {
	var form model.PurchaseForm
	var seed uint64

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Price a coffee purchase",
		Example: `  agrobot buy --variety Caturra --producer "Ana Gómez" --properties Chocolate --quantity 10
  agrobot buy --variety Geisha --producer "Ana Gómez" --properties Floral --quantity 2 --unit kg --currency COP`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("seed") {
				opts.cfg.Pricing.Seed = seed
			}

			a, err := opts.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			quote, err := a.Calculator.Quote(form)
			if err != nil {
				fmt.Fprintln(out, errorStyle.Render(service.DescribeError(err)))
				return nil
			}

			fmt.Fprintln(out, summaryBox.Render(service.Summary(quote)))

			if a.Repo != nil {
				if err := a.Repo.RecordPurchase(cmd.Context(), quote); err != nil {
					logrus.WithError(err).Error("Failed to record purchase")
				} else {
					fmt.Fprintln(out, mutedStyle.Render("Compra registrada: "+quote.ID))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Variety, "variety", "", "coffee variety")
	cmd.Flags().StringVar(&form.Producer, "producer", "", "producer name")
	cmd.Flags().StringVar(&form.Properties, "properties", "", "flavor properties")
	cmd.Flags().StringVar(&form.Quantity, "quantity", "", "quantity to buy")
	cmd.Flags().StringVar(&form.Unit, "unit", model.UnitPound, "pound or kilogram")
	cmd.Flags().StringVar(&form.Currency, "currency", model.CurrencyUSD, "USD or COP")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the carbon credit estimate (0 uses PRICING_SEED)")

	return cmd
}
