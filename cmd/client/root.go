package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/orderpay/schedule/internal/config"
	"github.com/orderpay/schedule/internal/kvstore"
	"github.com/orderpay/schedule/internal/remote"
	"github.com/orderpay/schedule/internal/schedule"
	"github.com/orderpay/schedule/internal/syncer"
)

const watchRetryDelay = 5 * time.Second

var (
	flagBackend  string
	flagMonth    string
	flagEmployee string
)

var rootCmd = &cobra.Command{
	Use:   "orderpay",
	Short: "Shift and order payroll tracker",
	Long: `orderpay edits one month of shifts and orders per employee and
keeps it in sync with the schedule endpoint (or a local file/Redis store).
Edits are saved automatically; remote changes are pulled in the background.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: remote, file or redis (default from CLIENT_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagMonth, "month", "", "month to open, YYYY-MM (default current)")
	rootCmd.Flags().StringVar(&flagEmployee, "employee", "", "show only this employee")

	rootCmd.AddCommand(reportCmd)
}

func setup() (*config.ClientConfig, schedule.MonthKey, error) {
	// stderr keeps the table output clean
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}

	month := schedule.CurrentMonth(time.Now())
	if flagMonth != "" {
		if month, err = schedule.ParseMonthKey(flagMonth); err != nil {
			return nil, "", err
		}
	}
	return cfg, month, nil
}

// openBackend returns the configured backend and a function releasing it.
func openBackend(ctx context.Context, cfg *config.ClientConfig) (syncer.Backend, func(), error) {
	switch cfg.Backend {
	case "remote":
		return remote.NewClient(cfg.Endpoint, cfg.RequestTimeout), func() {}, nil
	case "file":
		dir := cfg.DataDir
		if dir == "" {
			var err error
			if dir, err = kvstore.DefaultDir(); err != nil {
				return nil, nil, err
			}
		}
		return kvstore.NewFileStore(dir), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return kvstore.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, month, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	engine := syncer.New(backend, syncer.Options{
		RefreshInterval: cfg.RefreshInterval,
		DebounceDelay:   cfg.DebounceDelay,
		Notifier:        consoleNotifier{out: cmd.OutOrStdout()},
		Logger:          slog.Default(),
	})

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = engine.Run(ctx)
	}()
	// Run flushes a debounced edit on the way out
	defer func() {
		cancel()
		<-stopped
	}()

	if err := engine.Load(month); err != nil {
		return err
	}

	if cfg.Backend == "remote" && cfg.WatchURL != "" {
		go remote.Watch(ctx, cfg.WatchURL, watchRetryDelay, func(saved schedule.MonthKey) {
			snap, err := engine.Snapshot()
			if err != nil || snap.Month != saved {
				return
			}
			_ = engine.RefreshNow()
		})
	}

	repl := newREPL(engine, cmd.OutOrStdout())
	if d, ok := backend.(deleter); ok {
		repl.deleter = d
	}
	if flagEmployee != "" {
		if repl.filter, err = parseEmployee(flagEmployee); err != nil {
			return err
		}
	}
	repl.run(ctx, cmd.InOrStdin())
	return nil
}
