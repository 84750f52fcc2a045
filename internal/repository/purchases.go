package repository

import (
	"context"
	"fmt"

	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

var purchaseDDL = map[string]string{
	DriverPostgres: `CREATE TABLE IF NOT EXISTS purchases (
		id TEXT PRIMARY KEY,
		variety TEXT NOT NULL,
		producer TEXT NOT NULL,
		properties TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		unit TEXT NOT NULL,
		quantity_lb DOUBLE PRECISION NOT NULL,
		unit_price_usd DOUBLE PRECISION NOT NULL,
		total_usd DOUBLE PRECISION NOT NULL,
		currency TEXT NOT NULL,
		total DOUBLE PRECISION NOT NULL,
		carbon_credits DOUBLE PRECISION NOT NULL,
		price_from_blend BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	DriverSQLite: `CREATE TABLE IF NOT EXISTS purchases (
		id TEXT PRIMARY KEY,
		variety TEXT NOT NULL,
		producer TEXT NOT NULL,
		properties TEXT NOT NULL,
		quantity REAL NOT NULL,
		unit TEXT NOT NULL,
		quantity_lb REAL NOT NULL,
		unit_price_usd REAL NOT NULL,
		total_usd REAL NOT NULL,
		currency TEXT NOT NULL,
		total REAL NOT NULL,
		carbon_credits REAL NOT NULL,
		price_from_blend BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

const purchaseColumns = `id, variety, producer, properties, quantity, unit, quantity_lb,
	unit_price_usd, total_usd, currency, total, carbon_credits, price_from_blend, created_at`

// EnsureSchema creates the purchase ledger table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl, ok := purchaseDDL[r.Driver()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", r.Driver())
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create purchases table: %w", err)
	}
	return nil
}

// RecordPurchase stores a priced quote in the ledger
func (r *Repository) RecordPurchase(ctx context.Context, q *model.Quote) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES (:id, :variety, :producer, :properties, :quantity, :unit, :quantity_lb,
			:unit_price_usd, :total_usd, :currency, :total, :carbon_credits, :price_from_blend, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	return nil
}

// RecentPurchases returns up to limit purchases, newest first, and the ledger size
func (r *Repository) RecentPurchases(ctx context.Context, limit int) ([]model.Quote, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchases"); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	query := r.db.Rebind(`SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at DESC, id LIMIT ?`)
	purchases := []model.Quote{}
	if err := r.db.SelectContext(ctx, &purchases, query, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchases: %w", err)
	}
	return purchases, total, nil
}
