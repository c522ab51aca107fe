// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/Adam-Agbaria/numbers-game-server/internal/config"
	"github.com/Adam-Agbaria/numbers-game-server/internal/database"
	"github.com/Adam-Agbaria/numbers-game-server/internal/game"
	"github.com/Adam-Agbaria/numbers-game-server/internal/handlers"
	"github.com/Adam-Agbaria/numbers-game-server/internal/middleware"
	"github.com/Adam-Agbaria/numbers-game-server/internal/models"
	"github.com/Adam-Agbaria/numbers-game-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	var st store.Store
	if cfg.RedisAddr != "" {
		rs, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("redis store: %v", err)
		}
		st = rs
		logger.Infof("Using Redis session store at %s", cfg.RedisAddr)
	} else {
		st = store.NewMemoryStore()
		logger.Info("REDIS_ADDR not set, using in-memory session store")
	}

	lifecycleCfg := game.LifecycleConfig{
		SubmitWindow:      cfg.SubmitWindow,
		GraceWindow:       cfg.GraceWindow,
		ResultsHold:       cfg.ResultsHold,
		TargetFactor:      cfg.TargetFactor,
		DefaultSubmission: cfg.DefaultSubmission,
	}
	scheduler := game.NewScheduler(st, lifecycleCfg, logger)

	if cfg.ArchivalEnabled() {
		if err := database.Connect(context.Background(), cfg); err != nil {
			log.Fatalf("postgres: %v", err)
		}
		logger.Info("Result archival enabled")
		scheduler.OnFinish = func(ctx context.Context, sess *models.Session) {
			if err := database.ArchiveSession(ctx, sess); err != nil {
				logger.WithField("session", sess.ID).WithError(err).Error("failed to archive session")
			}
		}
	}

	svc := &game.Service{
		Store:     st,
		Scheduler: scheduler,
		MinNumber: cfg.MinNumber,
		MaxNumber: cfg.MaxNumber,
	}
	srv := handlers.NewServer(svc, cfg, logger)

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	mux.Handle("/game/create", logged(handlers.CreateGameHandler(srv)))
	mux.Handle("/game/join", logged(handlers.JoinGameHandler(srv)))
	mux.Handle("/game/start", logged(handlers.StartGameHandler(srv)))
	mux.Handle("/game/status", logged(handlers.StatusHandler(srv)))
	mux.Handle("/game/results", logged(handlers.ResultsHandler(srv)))
	mux.Handle("/round/submit", logged(handlers.SubmitNumberHandler(srv)))

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, middleware.CORSMiddleware(mux)); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
