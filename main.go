package main

import (
	"github.com/wfunc/cakeserver/config"
	"github.com/wfunc/cakeserver/logger"
	"github.com/wfunc/cakeserver/persistence"
	"github.com/wfunc/cakeserver/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Match history storage is optional; rooms live in memory either way.
	var store persistence.Store
	if cfg.Database.Enabled {
		pg := cfg.Database.Postgres
		switch cfg.Database.Driver {
		case "sql":
			store, err = persistence.NewSQLStore(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		default:
			store, err = persistence.NewGormStore(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		}
		if err != nil {
			logger.Log.Fatalf("Failed to connect to database: %v", err)
		}
		logger.Log.Info("Database connection successful.")
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, store)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
