package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"FightLedger/internal/config"
	"FightLedger/internal/ledger"
	"FightLedger/internal/logger"
	"FightLedger/internal/metrics"
	"FightLedger/internal/notifier"
	"FightLedger/internal/scheduler"
	"FightLedger/internal/storage"
)

const usage = `usage: ledger <command> [flags]

commands:
  add       record a bet
  list      list recorded bets
  delete    delete a bet by id
  clear     delete every bet (requires -yes)
  stats     show aggregate statistics
  chart     show the cumulative profit series
  convert   convert odds between formats
  kelly     Kelly criterion stake fraction
  settings  show or change odds format and bankroll rules
  serve     run digests, Telegram commands and the metrics endpoint
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("fightledger", cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "ledger %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, out io.Writer) error {
	name, rest := args[0], args[1:]

	// Pure odds math needs no ledger.
	switch name {
	case "convert":
		return cmdConvert(rest, out)
	case "kelly":
		return cmdKelly(rest, out)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(out, usage)
		return nil
	}

	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Dir, cfg.Storage.SQLitePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	store, err := ledger.Open(kv, log)
	if err != nil {
		return err
	}

	if name == "serve" {
		return serve(ctx, cfg, log, kv, store)
	}

	c := &cli{store: store, out: out}
	cmd, ok := c.commands()[name]
	if !ok {
		return errUsage
	}
	return cmd(rest)
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger, kv storage.Store, store *ledger.Store) error {
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	chatID, err := cfg.ChatID()
	if err != nil {
		return err
	}

	tn, err := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, chatID, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	srv, srvErr := metrics.StartServer(cfg.Metrics.Port, reg, func(ctx context.Context) error {
		_, _, err := kv.Load("settings")
		return err
	})
	log.Info("metrics server listening", zap.String("port", cfg.Metrics.Port))

	sched := scheduler.NewScheduler(ctx, store, tn, m, log)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.RefreshMetrics()
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("FightLedger is running, press Ctrl+C to stop")

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping")
	case err := <-srvErr:
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics server shutdown", zap.Error(err))
	}
	return nil
}
