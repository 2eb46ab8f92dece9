package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"parking-api/internal/config"
	"parking-api/internal/events"
	"parking-api/internal/geocoder"
	"parking-api/internal/logging"
	"parking-api/internal/repository"
	"parking-api/internal/server"
	"parking-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type closablePublisher interface {
	service.EventPublisher
	Close() error
}

//	@title			Parking Spot API
//	@version		1.0
//	@description	Records parking spots and resolves their street address.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logging.Setup(config.LogLevel)

	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Spot store
	store, err := repository.Open(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Str("backend", config.StoreBackend).Msg("cannot open store")
	}
	defer store.Close()

	resolver := geocoder.NewClient(config.GoogleMapsAPIKey,
		geocoder.WithBaseURL(config.GeocodeBaseURL),
		geocoder.WithTimeout(config.GeocodeTimeout),
	)
	if !resolver.Enabled() {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set, address lookup disabled")
	}

	var publisher closablePublisher = events.NopPublisher{}
	if config.KafkaEnabled() {
		publisher = events.NewKafkaPublisher(config.KafkaBroker, config.KafkaTopic)
	}
	defer publisher.Close()

	// Initialize layers
	spotService := service.NewSpotService(store, resolver, publisher)

	if config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(server.Deps{Backend: config.StoreBackend, Spots: spotService})

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", config.ServerAddress).Str("backend", config.StoreBackend).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
