package main

import (
	"net/http"

	"timetracker/config"
	"timetracker/handlers"
	"timetracker/logger"
	"timetracker/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	db := config.InitDB(cfg)
	mail := mailer.New(cfg)

	router := handlers.SetupRouter(db, cfg, mail)

	logger.Infof("server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
