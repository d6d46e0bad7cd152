package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	config "github.com/growtweet/growtweet/internal/config/api"
	"github.com/growtweet/growtweet/internal/obs"
	"github.com/growtweet/growtweet/internal/obs/retry"
	outboxsvc "github.com/growtweet/growtweet/internal/outbox"
	kafkax "github.com/growtweet/growtweet/internal/repository/kafka"
	pg "github.com/growtweet/growtweet/internal/repository/postgres"
	"github.com/growtweet/growtweet/internal/services/sweeper"
	"github.com/growtweet/growtweet/internal/token"
)

func main() {
	configPath := flag.String("config", "config/api.yaml", "path to config file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting api", zap.String("env", cfg.App.Env), zap.String("ver", cfg.App.Version))

	otelShutdown, err := initOTel(rootCtx, cfg)
	if err != nil {
		logger.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	db, err := initDB(rootCtx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	codec, err := token.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal("token codec", zap.Error(err))
	}

	revocations := pg.NewRevocationRepo(db)
	outboxRepo := pg.NewOutboxRepo(db)

	go sweeper.NewRunner(logger, revocations, cfg.Auth.SweepInterval).Run(rootCtx)

	if cfg.Kafka.Enable {
		producer := kafkax.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer func() { _ = producer.Close() }()

		dispatch := outboxsvc.MakeGlobalHandler(
			kafkax.NewTweetEvents(producer),
			retry.DefaultKafkaPolicy(logger),
		)
		outboxsvc.NewRunner(
			logger, outboxRepo, dispatch,
			cfg.Outbox.Workers, cfg.Outbox.BatchSize,
			cfg.Outbox.WaitTime, cfg.Outbox.InProgressTTL,
		).Start(rootCtx)
	} else {
		logger.Info("kafka disabled, outbox rows accumulate until a runner drains them")
	}

	metricsSrv := obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, db.Pool.Ping, logger)

	httpSrv := buildHTTPServer(cfg, logger, db, codec, revocations, outboxRepo)
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- serveHTTP(httpSrv, logger) }()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal")
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	_ = httpSrv.Shutdown(shCtx)
	_ = metricsSrv.Shutdown(shCtx)

	time.Sleep(100 * time.Millisecond)
	logger.Info("bye")
}
