package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Andrela2025/Agro-Conecta/internal/app"
	"github.com/Andrela2025/Agro-Conecta/internal/config"
)

var version = "dev"

type globalOptions struct {
	dataset  string
	logLevel string
	name     string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "agrobot",
		Short: "☕ Ask about Colombian coffee lots and price purchases",
		Long: `agrobot answers Spanish questions about the coffee lots in the dataset
(varieties, prices, quality, harvests, producers, flavor and carbon credits)
and prices purchase requests.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.dataset, "dataset", "", "path to the coffee dataset CSV (default from DATASET_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.name, "name", "", "your name, used in greetings")

	cmd.AddCommand(askCmd(opts))
	cmd.AddCommand(chatCmd(opts))
	cmd.AddCommand(buyCmd(opts))
	cmd.AddCommand(varietiesCmd(opts))
	cmd.AddCommand(importCmd(opts))

	return cmd
}

func (o *globalOptions) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.dataset != "" {
		cfg.Dataset.Path = o.dataset
		cfg.Dataset.Table = ""
	}
	cfg.Logging.Level = o.logLevel

	logrus.SetOutput(cmd.ErrOrStderr())
	cfg.SetupLogger()
	o.cfg = cfg
	return nil
}

func (o *globalOptions) app(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, o.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
