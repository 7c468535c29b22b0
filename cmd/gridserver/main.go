package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohammed-shakir/h3-spatial-cache/internal/cache/rangecache"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/cache/redisstore"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/core/config"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/core/observability"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/core/router"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/core/server"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/grid"
	"github.com/mohammed-shakir/h3-spatial-cache/internal/invalidation/kafkaconsumer"
	mylog "github.com/mohammed-shakir/h3-spatial-cache/internal/logger"
)

var Version = "dev"

func main() {
	configFile := flag.String("config", "", "optional TOML file overlaying environment-derived config")
	flag.Parse()

	cfg := config.FromEnv()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFile(cfg, *configFile)
		if err != nil {
			slog.Error("load config file", "err", err)
			os.Exit(1)
		}
	}

	zl := mylog.Build(mylog.Config{Level: cfg.LogLevel, Component: "gridserver"}, os.Stdout)
	logger := mylog.NewSlog(&zl)
	observability.ExposeBuildInfo(Version)
	grid.SetPoolSize(cfg.RangeWorkerPool)
	grid.SetLogger(zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := redisstore.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", "err", err)
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	cache, err := rangecache.New(redisClient, cfg.RangeCacheLRU, cfg.RangeCacheTTL)
	if err != nil {
		logger.Error("build range cache", "err", err)
		os.Exit(1)
	}

	if cfg.Invalidation.Enabled {
		consumer := kafkaconsumer.New(kafkaconsumer.FromEnv(), logger, cache)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error("invalidation consumer stopped", "err", err)
			}
		}()
	}

	rt := router.New(cache, cfg.DefaultLevel)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := server.Run(ctx, cfg, logger, rt); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
