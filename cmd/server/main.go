package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-hub/internal/config"
	handlerhttp "github.com/MKhiriev/go-user-hub/internal/handler/http"
	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/objstore"
	"github.com/MKhiriev/go-user-hub/internal/scheduler"
	"github.com/MKhiriev/go-user-hub/internal/server"
	"github.com/MKhiriev/go-user-hub/internal/service"
	"github.com/MKhiriev/go-user-hub/internal/store"
	"github.com/MKhiriev/go-user-hub/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		panic(fmt.Sprintf("error getting configs: %v", err))
	}

	log := logger.NewLogger("go-user-hub", logger.Config{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.FilePath,
	})

	log.Debug().Object("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	objectStore, err := objstore.New(ctx, cfg.Storage.S3, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating object storage client")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Msg("error preparing upload bucket")
	}

	services := service.NewServices(storages, objectStore, cfg, log)

	handlers := handlerhttp.NewHandler(services, storages.DB, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()

	jobs := scheduler.NewScheduler(cfg.Scheduler, services.UserService, storages.DB, log)
	if err := jobs.Start(jobCtx); err != nil {
		log.Fatal().Err(err).Msg("error starting scheduler")
	}

	pool := workers.NewPool(cfg.Workers, storages.DB.ErrorClassifier(), log)
	workers.NewWorkers(pool).Run(jobCtx)

	srv.RunServer()

	// server has stopped; drain background work
	cancelJobs()
	jobs.Stop()
	pool.Stop()
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
