package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/orderpay/schedule/internal/config"
	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/repository"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/seed"
)

func main() {
	var op int
	var monthFlag string
	var file string
	var seedValue int64

	flag.IntVar(&op, "op", 0, "operation (1: random month, 2: import CSV)")
	flag.StringVar(&monthFlag, "month", schedule.CurrentMonth(time.Now()).String(), "month to generate, YYYY-MM")
	flag.StringVar(&file, "file", "", "CSV file to import")
	flag.Int64Var(&seedValue, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to open database pool", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.Migrate(); err != nil {
		logger.Error("failed to migrate schedule table", "error", err)
		return
	}

	var records []domain.DayRecord
	switch op {
	case 0:
		logger.Error("no operation given")
		return
	case 1:
		month, err := schedule.ParseMonthKey(monthFlag)
		if err != nil {
			logger.Error("invalid month", "error", err)
			return
		}
		records = seed.RandomMonth(rand.New(rand.NewSource(seedValue)), month, domain.Employees)
	case 2:
		if file == "" {
			logger.Error("-file is required for CSV import")
			return
		}
		f, err := os.Open(file)
		if err != nil {
			logger.Error("failed to open file", "error", err)
			return
		}
		defer f.Close()

		records, err = seed.ImportCSV(f)
		if err != nil {
			logger.Error("failed to import CSV", "file", file, "error", err)
			return
		}
	default:
		logger.Error("unknown operation", slog.Int("op", op))
		return
	}

	if err := repo.UpsertDayRecords(records); err != nil {
		logger.Error("failed to insert records", slog.String("error", err.Error()))
		return
	}
	logger.Info("records inserted", slog.Int("count", len(records)))
}
