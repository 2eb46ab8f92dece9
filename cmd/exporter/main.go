package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"parking-api/internal/config"
	"parking-api/internal/logging"
	"parking-api/internal/repository"
	"parking-api/internal/snapshot"

	"github.com/rs/zerolog/log"
)

func main() {
	bucket := flag.String("bucket", "", "Bucket to write the snapshot to (defaults to SNAPSHOT_BUCKET)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if *bucket == "" {
		*bucket = cfg.SnapshotBucket
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open store")
	}
	defer store.Close()

	client, err := snapshot.NewMinioClient(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create object storage client")
	}

	spots, err := store.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot list spots")
	}

	name, err := snapshot.NewExporter(client, *bucket).Export(ctx, spots)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	log.Info().Str("bucket", *bucket).Str("object", name).Int("spots", len(spots)).Msg("done")
}
