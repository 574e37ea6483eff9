package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"MarketCache/internal/collector"
	"MarketCache/internal/config"
	"MarketCache/internal/logging"
	"MarketCache/internal/model"
	"MarketCache/internal/query"
	"MarketCache/internal/recorder"
	"MarketCache/internal/report"
	"MarketCache/internal/scheduler"
)

const dateLayout = "2006-01-02"

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	open := flag.String("open", "", "first date, YYYY-MM-DD")
	closeDate := flag.String("close", "", "last date, YYYY-MM-DD")
	interval := flag.String("interval", "", "bar interval (1d in daily mode)")
	field := flag.String("field", "close", "close, open, high, low, volume or ohlcv")
	summary := flag.Bool("summary", false, "print a summary instead of CSV")
	flag.Parse()

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	rec := newRecorder(cfg, log)
	defer rec.Close()

	db := newDatabase(cfg, rec, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if tickers := flag.Args(); len(tickers) > 0 {
		req, err := buildRequest(tickers, *open, *closeDate, *interval, *field)
		if err != nil {
			log.Fatal("invalid arguments", zap.Error(err))
		}
		frame, err := db.GetInfo(ctx, req)
		if err != nil {
			log.Fatal("query failed", zap.Strings("tickers", tickers), zap.Error(err))
		}
		if *summary {
			fmt.Print(report.Summary(frame))
			return
		}
		if err := report.WriteCSV(os.Stdout, frame); err != nil {
			log.Fatal("write csv", zap.Error(err))
		}
		return
	}

	runScheduler(ctx, cfg, query.NewSynchronized(db), log)
}

func newRecorder(cfg *config.Config, log *zap.Logger) recorder.Recorder {
	if cfg.Recorder.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Recorder.SQLitePath, log)
	if err != nil {
		log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newDatabase(cfg *config.Config, rec recorder.Recorder, log *zap.Logger) *query.Database {
	var adapter *collector.Adapter
	if cfg.Providers.Mock {
		mock := &collector.MockFetcher{Price: 100}
		adapter = collector.NewAdapter(mock, nil, mock, mock, rec, log)
		log.Info("using mock providers")
	} else {
		p := cfg.Providers
		common := []collector.Option{
			collector.WithProxy(cfg.Proxy),
			collector.WithTimeout(p.Timeout),
			collector.WithRateLimit(p.RequestsPerSecond, p.Burst),
			collector.WithUserAgent(p.UserAgent),
		}
		with := func(extra ...collector.Option) []collector.Option {
			return append(append([]collector.Option{}, common...), extra...)
		}
		yahoo := collector.NewYahooFetcher(with(collector.WithBaseURL(p.YahooBaseURL))...)
		brapi := collector.NewBrapiFetcher(with(collector.WithBaseURL(p.BrapiBaseURL), collector.WithToken(p.BrapiToken))...)
		bcb := collector.NewBCBFetcher(with(collector.WithBaseURL(p.BCBBaseURL))...)
		adapter = collector.NewAdapter(yahoo, brapi, yahoo, bcb, rec, log)
		adapter.Directory = brapi
	}

	opts := []query.Option{
		query.WithSettings(cfg.Settings()),
		query.WithRecorder(rec),
		query.WithLogger(log),
	}
	if cfg.Intraday() {
		return query.NewMultiFrame(adapter, opts...)
	}
	return query.NewDaily(adapter, opts...)
}

func buildRequest(tickers []string, open, closeDate, interval, field string) (query.Request, error) {
	req := query.Request{
		Tickers:  tickers,
		Interval: model.Interval(strings.ToLower(interval)),
		Field:    field,
	}
	var err error
	if open != "" {
		if req.Open, err = time.Parse(dateLayout, open); err != nil {
			return req, fmt.Errorf("open: %w", err)
		}
	}
	if closeDate != "" {
		if req.Close, err = time.Parse(dateLayout, closeDate); err != nil {
			return req, fmt.Errorf("close: %w", err)
		}
	}
	if !req.Open.IsZero() && !req.Close.IsZero() && req.Close.Before(req.Open) {
		return req, errors.New("close is before open")
	}
	return req, nil
}

func runScheduler(ctx context.Context, cfg *config.Config, db *query.Synchronized, log *zap.Logger) {
	wl := scheduler.Watchlist{
		Tickers:      cfg.Schedule.Watchlist,
		Interval:     model.Interval(cfg.Schedule.Interval),
		Field:        cfg.Schedule.Field,
		LookbackDays: cfg.Schedule.LookbackDays,
	}
	sched := scheduler.NewScheduler(ctx, db, wl, log)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ResetCron); err != nil {
		log.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, refreshing watchlist now")
		go func() {
			if err := sched.RefreshNow(); err != nil {
				log.Error("initial refresh failed", zap.Error(err))
			}
		}()
	}

	log.Info("MarketCache is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info("shutdown signal received, stopping")
}
