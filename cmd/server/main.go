package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jmarek/bowldraft/internal/config"
	"github.com/jmarek/bowldraft/internal/draft"
	"github.com/jmarek/bowldraft/internal/httpapi"
	"github.com/jmarek/bowldraft/internal/room"
	"github.com/jmarek/bowldraft/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	league, err := draft.LoadLeagueConfig(cfg.LeagueConfigPath)
	if err != nil {
		logger.Fatal("load league config", zap.Error(err))
	}

	opts := room.Options{
		Log: logger,
		Timers: room.Timers{
			Default:  time.Duration(cfg.DefaultTimerSec) * time.Second,
			Inactive: time.Duration(cfg.InactiveTimerSec) * time.Second,
		},
	}

	if cfg.DatabaseURL != "" {
		db, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		opts.Teams = store.NewTeamStore(db)
		opts.Players = store.NewPlayerStore(db)
	} else {
		logger.Warn("DATABASE_URL not set; draft runs, finalize is disabled")
	}

	ctx := context.Background()
	rm := room.New(ctx, draft.NewState(league), opts)

	handler := httpapi.SetupRoutes(rm, logger)

	logger.Info("listening",
		zap.String("port", cfg.Port),
		zap.Int("teams", len(league.Teams)),
		zap.Int("rounds", league.Rounds))
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(envName string) (*zap.Logger, error) {
	if envName == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
