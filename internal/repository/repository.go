package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/orderpay/schedule/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// Migrate creates the schedule table when it is missing. The column types
// are accepted by both postgres and sqlite.
func (r *Repository) Migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedule (
			date         TEXT NOT NULL,
			employee     TEXT NOT NULL,
			shift1_start TEXT NOT NULL DEFAULT '',
			shift1_end   TEXT NOT NULL DEFAULT '',
			has_shift2   BOOLEAN NOT NULL DEFAULT FALSE,
			shift2_start TEXT NOT NULL DEFAULT '',
			shift2_end   TEXT NOT NULL DEFAULT '',
			orders       INTEGER NOT NULL DEFAULT 0,
			bonus        DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (date, employee)
		)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query); err != nil {
		return err
	}

	return nil
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}
