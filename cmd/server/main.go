package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	handler "github.com/MKhiriev/go-note-keeper/internal/handler/http"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/server"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("note-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.Storage.DB.DSN == "" {
		log.Fatal().Msg("database DSN is required")
	}
	if cfg.App.TokenSignKey == "" {
		log.Fatal().Msg("token sign key is required")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repos := store.NewRepositories(db)
	services := service.NewServices(repos, cfg.App, log)
	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
