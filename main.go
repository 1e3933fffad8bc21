package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/api"
	"github.com/raushankrgupta/multisite-product-viewer/config"
	"github.com/raushankrgupta/multisite-product-viewer/history"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/scrapeapi"
	"github.com/raushankrgupta/multisite-product-viewer/session"
	"github.com/raushankrgupta/multisite-product-viewer/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(logx.LoggerOpts{Production: cfg.Environment().IsProduction()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := scrapeapi.NewClient(cfg.ScrapeAPIBaseURL, cfg.ScrapeAPITimeout)

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		logx.Info().Msg("session store: redis")
	}

	var recorder history.Recorder = history.LogRecorder{}
	var attempts *history.MongoRecorder
	if cfg.MongoURI != "" {
		if err := utils.ConnectMongo(cfg.MongoURI); err != nil {
			logx.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = utils.DisconnectMongo(ctx)
		}()
		collection, err := utils.GetCollection(cfg.MongoDB, history.AttemptsCollection)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to open attempts collection")
		}
		attempts = history.NewMongoRecorder(collection)
		recorder = history.Multi{recorder, attempts}
	}

	manager := session.NewManager(store, client, recorder, cfg.SessionTTL)
	go manager.Run(ctx, time.Minute)
	server, err := api.NewServer(manager, client, api.Options{
		Username:   cfg.DemoUsername,
		Password:   cfg.DemoPassword,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Secure:     cfg.Environment().IsProduction(),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build server")
	}
	if attempts != nil {
		server.WithHistory(attempts)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().Str("port", cfg.Port).Str("backend", cfg.ScrapeAPIBaseURL).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}
