package main

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/config"
	handler "github.com/Lanun66/Stay-D-Hidrated-2/internal/handler/http"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/hub"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/server"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/service"
	"github.com/Lanun66/Stay-D-Hidrated-2/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("hydrate-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	changeHub := hub.NewHub(log)

	services, err := service.NewServices(ctx, storages, changeHub, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers := handler.NewHandler(services, changeHub, log)

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
