package main

import (
	"context"
	"flag"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/gemblocks/config"
	"github.com/zucenko/gemblocks/level"
	"github.com/zucenko/gemblocks/server"
	"github.com/zucenko/gemblocks/store"
	"net/http"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func newStore(cfg *config.Config) store.CurrencyStore {
	if cfg.CurrencyFile == "" {
		log.Info("currency kept in memory")
		return store.NewMemoryStore(0)
	}
	log.WithField("path", cfg.CurrencyFile).Info("currency file")
	return store.NewFileStore(cfg.CurrencyFile)
}

func newLevels(cfg *config.Config) (*level.Cache, error) {
	cache := level.NewCache(level.NewGenerator(cfg.Generator, nil))
	if cfg.LevelsDir == "" {
		return cache, nil
	}
	defs, err := level.LoadDir(cfg.LevelsDir)
	if err != nil {
		return nil, err
	}
	cache.Preload(defs)
	log.WithFields(log.Fields{"dir": cfg.LevelsDir, "levels": len(defs)}).Info("hand-authored levels loaded")
	return cache, nil
}

func main() {
	configPath := flag.String("config", "gemblocks.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	lvl, err := cfg.Level()
	if err != nil {
		log.WithError(err).Fatal("log_level")
	}
	log.SetLevel(lvl)

	levels, err := newLevels(cfg)
	if err != nil {
		log.WithError(err).Fatal("levels_dir")
	}

	Server := Server{
		GameServer: server.NewGameServer(levels, newStore(cfg), cfg.Costs, cfg.MaxSessions),
	}
	go Server.GameServer.Loop(context.Background())
	Server.routes()
	log.WithField("addr", cfg.Addr()).Info("listening")
	log.Fatalln(http.ListenAndServe(cfg.Addr(), Server.router))
}
