package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Andrela2025/Agro-Conecta/internal/dataset"
	"github.com/Andrela2025/Agro-Conecta/internal/model"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ErrInvalidTable is returned for table names that are not plain identifiers
var ErrInvalidTable = errors.New("invalid table name")

// ErrTableNotEmpty is returned when importing into a table that already holds lots
var ErrTableNotEmpty = errors.New("lot table is not empty")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Repository handles database operations for the dataset table and the purchase ledger
type Repository struct {
	db *sqlx.DB
}

// NormalizeDriver maps driver aliases to registered database/sql driver names
func NormalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pq":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects to the database and verifies the connection
func Open(driver, dsn string, maxConn, maxIdleConn int) (*Repository, error) {
	driver, err := NormalizeDriver(driver)
	if err != nil {
		return nil, err
	}

	if driver == DriverPostgres {
		// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
		if !strings.Contains(dsn, "?") {
			dsn += "?prefer_simple_protocol=true"
		} else {
			dsn += "&prefer_simple_protocol=true"
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// every connection to :memory: is a separate database
		maxConn, maxIdleConn = 1, 1
	}
	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Driver returns the database/sql driver name in use
func (r *Repository) Driver() string {
	return r.db.DriverName()
}

func quoteTable(table string) (string, error) {
	if !identifierPattern.MatchString(table) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return `"` + table + `"`, nil
}

// LoadLotRecords reads every dataset column of the table as text, NULLs
// becoming empty strings, in the shape dataset.FromRecords expects.
func (r *Repository) LoadLotRecords(ctx context.Context, table string) ([]string, [][]string, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return nil, nil, err
	}

	selects := make([]string, len(dataset.RequiredColumns))
	for i, col := range dataset.RequiredColumns {
		selects[i] = fmt.Sprintf(`CAST("%s" AS TEXT)`, col)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), quoted)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query lots: %w", err)
	}
	defer rows.Close()

	header := append([]string(nil), dataset.RequiredColumns...)
	var records [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		record := make([]string, len(header))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read lots: %w", err)
	}

	return header, records, nil
}

// LoadStore builds a dataset store from the table
func (r *Repository) LoadStore(ctx context.Context, table string) (*dataset.Store, error) {
	header, records, err := r.LoadLotRecords(ctx, table)
	if err != nil {
		return nil, err
	}
	return dataset.FromRecords(header, records)
}

// EnsureLotTable creates the dataset table if it does not exist
func (r *Repository) EnsureLotTable(ctx context.Context, table string) error {
	quoted, err := quoteTable(table)
	if err != nil {
		return err
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		"coffee_variety" TEXT NOT NULL,
		"price" DOUBLE PRECISION,
		"ranking" DOUBLE PRECISION,
		"year" INTEGER,
		"name" TEXT,
		"location" TEXT,
		"properties" TEXT,
		"carbon_credits" DOUBLE PRECISION
	)`, quoted)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create lot table: %w", err)
	}
	return nil
}

// CountLots returns the number of rows in the dataset table
func (r *Repository) CountLots(ctx context.Context, table string) (int, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+quoted); err != nil {
		return 0, fmt.Errorf("failed to count lots: %w", err)
	}
	return n, nil
}

// ImportLots inserts lots into the dataset table in one transaction.
// With replace set, existing rows are deleted in the same transaction.
func (r *Repository) ImportLots(ctx context.Context, table string, lots []model.Lot, replace bool) (int, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoted); err != nil {
			return 0, fmt.Errorf("failed to clear lot table: %w", err)
		}
	}

	query := tx.Rebind(fmt.Sprintf(
		`INSERT INTO %s ("coffee_variety", "price", "ranking", "year", "name", "location", "properties", "carbon_credits")
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quoted))
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, lot := range lots {
		_, err := stmt.ExecContext(ctx, lot.Variety, lot.Price, lot.QualityScore, lot.HarvestYear,
			lot.ProducerName, lot.Location, lot.FlavorProperties, lot.CarbonCredits)
		if err != nil {
			return 0, fmt.Errorf("lot %d (%s): %w", i, lot.Variety, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(lots), nil
}
