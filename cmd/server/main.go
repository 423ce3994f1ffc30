package main

import (
	"context"

	"github.com/eventa/match-service/internal/app"
	"github.com/eventa/match-service/internal/cache"
	"github.com/eventa/match-service/internal/config"
	"github.com/eventa/match-service/internal/db"
	"github.com/eventa/match-service/internal/logger"
	"github.com/eventa/match-service/internal/server"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Inject logger into app context
	appCtx := app.New(database, redisCache, log)

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, server.NewRouter(appCtx)); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
