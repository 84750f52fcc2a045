// Package app wires the dataset, the intent model and the services together
// for the server and CLI binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Andrela2025/Agro-Conecta/internal/classifier"
	"github.com/Andrela2025/Agro-Conecta/internal/config"
	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/repository"
	"github.com/Andrela2025/Agro-Conecta/internal/service"
)

// ErrNoDatabase is returned when a dataset table is configured without a database
var ErrNoDatabase = errors.New("dataset table configured but no database DSN")

// App holds the initialized components
type App struct {
	Store      *dataset.Store
	Model      *classifier.Model
	Router     *service.Router
	Calculator *service.Calculator
	Repo       *repository.Repository // nil when no database is configured
}

// New loads the dataset, trains the intent model and builds the services
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	if cfg.LedgerEnabled() {
		repo, err := repository.Open(cfg.Database.Driver, cfg.Database.DSN,
			cfg.Database.MaxConnections, cfg.Database.MaxIdleConnections)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		a.Repo = repo
		logrus.WithField("driver", repo.Driver()).Info("✅ Connected to purchase ledger database")
	}

	store, err := a.loadStore(ctx, cfg.Dataset)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store
	logrus.WithFields(logrus.Fields{
		"lots":      store.Len(),
		"varieties": len(store.UniqueVarieties()),
	}).Info("✅ Dataset loaded")

	start := time.Now()
	model, err := classifier.Train(classifier.DefaultCorpus(), classifier.Options{
		C:             cfg.Classifier.C,
		MaxIterations: cfg.Classifier.MaxIterations,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("train intent model: %w", err)
	}
	a.Model = model
	logrus.WithFields(logrus.Fields{
		"labels":     len(model.Labels()),
		"vocabulary": model.VocabularySize(),
		"took":       time.Since(start).String(),
	}).Info("✅ Intent model trained")

	a.Router = service.NewRouter(model, store, service.WithDefaultName(cfg.Bot.DefaultName))
	a.Calculator = service.NewCalculator(store, service.NewSeededRand(cfg.Pricing.Seed),
		service.WithExchangeRate(cfg.Pricing.ExchangeRate))

	return a, nil
}

func (a *App) loadStore(ctx context.Context, cfg config.DatasetConfig) (*dataset.Store, error) {
	if cfg.Table == "" {
		return dataset.LoadFile(cfg.Path)
	}
	if a.Repo == nil {
		return nil, ErrNoDatabase
	}
	return a.Repo.LoadStore(ctx, cfg.Table)
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.Repo == nil {
		return nil
	}
	return a.Repo.Close()
}
