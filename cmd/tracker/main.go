package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"change_tracker/internal/config"
	"change_tracker/internal/feed"
	"change_tracker/internal/metrics"
	"change_tracker/internal/notify"
	"change_tracker/internal/roadmap"
	"change_tracker/internal/scheduler"
	"change_tracker/internal/service"
	"change_tracker/internal/storage/postgres"
)

const (
	jobSources = "sources"
	jobRoadmap = "roadmap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.String("once", "", "run a single job (sources or roadmap) and exit")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	logger.Info("connected to database")

	notifier, closeNotifier, err := setupNotifier(cfg, logger)
	if err != nil {
		logger.Error("failed to set up notifier", "error", err)
		os.Exit(1)
	}
	defer closeNotifier()

	sourceStore := postgres.NewSourceStore(db)
	activityStore := postgres.NewActivityStore(db)
	roadmapStore := postgres.NewRoadmapStore(db)
	txManager := postgres.NewTransactionManager(db)

	feedClient := feed.NewClient(feed.Config{
		Timeout:        cfg.Feeds.Timeout,
		UserAgent:      cfg.Feeds.UserAgent,
		MaxBodyBytes:   cfg.Feeds.MaxBodyBytes,
		MaxAttempts:    cfg.Feeds.Retry.MaxAttempts,
		InitialBackoff: cfg.Feeds.Retry.InitialBackoff,
		MaxBackoff:     cfg.Feeds.Retry.MaxBackoff,
	}, logger)

	roadmapClient := roadmap.NewClient(roadmap.Config{
		URL:          cfg.Roadmap.URL,
		Timeout:      cfg.Roadmap.Timeout,
		UserAgent:    cfg.Roadmap.UserAgent,
		MaxBodyBytes: cfg.Feeds.MaxBodyBytes,
	}, logger)

	sourceService := service.NewSourceService(
		sourceStore,
		activityStore,
		txManager,
		feedClient,
		notifier,
		logger,
		cfg.Feeds,
	)

	roadmapService := service.NewRoadmapService(
		roadmapStore,
		txManager,
		roadmapClient,
		notifier,
		logger,
		cfg.Roadmap,
		cfg.Notify.Enabled,
	)

	jobs := []scheduler.Job{{
		Name:     jobSources,
		Interval: cfg.Schedule.SourcesInterval,
		Run: func(ctx context.Context) error {
			_, err := sourceService.Run(ctx)
			return err
		},
	}}
	if cfg.Roadmap.URL != "" {
		jobs = append(jobs, scheduler.Job{
			Name:     jobRoadmap,
			Interval: cfg.Schedule.RoadmapInterval,
			Run: func(ctx context.Context) error {
				_, err := roadmapService.Run(ctx)
				return err
			},
		})
	} else {
		logger.Warn("roadmap.url is empty, roadmap job disabled")
	}

	sched := scheduler.NewScheduler(jobs, cfg.Schedule.RunTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *once != "" {
		if err := sched.RunOnce(ctx, *once); err != nil {
			logger.Error("run failed", "job", *once, "error", err)
			os.Exit(1)
		}
		return
	}

	metricsServer := startMetricsServer(cfg.Metrics.Addr, logger)
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting change tracker",
		"sources_interval", cfg.Schedule.SourcesInterval,
		"roadmap_interval", cfg.Schedule.RoadmapInterval,
		"notify", cfg.Notify.Enabled,
		"transport", cfg.Notify.Transport,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) (service.Notifier, func(), error) {
	if !cfg.Notify.Enabled {
		return notify.NewNop(logger), func() {}, nil
	}

	switch cfg.Notify.Transport {
	case config.TransportMail:
		return notify.NewMailer(notify.MailConfig{
			URL:       cfg.Mail.URL,
			Token:     cfg.Mail.Token,
			FromEmail: cfg.Mail.FromEmail,
			FromName:  cfg.Mail.FromName,
			ToEmail:   cfg.Mail.ToEmail,
			ToName:    cfg.Mail.ToName,
			Timeout:   cfg.Mail.Timeout,
		}, logger), func() {}, nil
	default:
		rabbitMQ, err := notify.NewRabbitMQ(notify.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return rabbitMQ, func() { _ = rabbitMQ.Close() }, nil
	}
}

func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	logger.Info("metrics server listening", "addr", addr)

	return srv
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
