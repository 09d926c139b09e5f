package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-leadscout-automation/internal/scraper"
)

// Repository mirrors accepted leads into Postgres. The CSV file stays the
// source of truth for resumption; the database is for querying and dashboards.
type Repository struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Hosted poolers (PgBouncer in transaction mode) choke on prepared
	// statements, so the statement cache stays off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the leads table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS leads (
			link       TEXT PRIMARY KEY,
			author     TEXT NOT NULL,
			ai_reason  TEXT NOT NULL,
			post_text  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create leads table: %w", err)
	}
	return nil
}

// SaveLead mirrors one accepted lead. Re-inserting a known link is a no-op so
// resumed runs stay idempotent.
func (r *Repository) SaveLead(ctx context.Context, lead scraper.Lead) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (link, author, ai_reason, post_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (link) DO NOTHING`,
		lead.Link, lead.Author, lead.Reason, lead.Text)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

// CountLeads reports how many leads the mirror holds, for the run summary.
func (r *Repository) CountLeads(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM leads").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}
