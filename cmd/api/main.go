package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gridpulse/adapters/postgres"
	"gridpulse/app"
	"gridpulse/internal"
	"gridpulse/internal/api"
	"gridpulse/internal/config"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	logger.Info("connected to database")

	store := postgres.NewStore(db)
	service := app.NewAnalyticsService(store, cfg.Analytics, logger)
	server := api.NewServer(service, cfg.Server.CORSOrigins, logger)

	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
