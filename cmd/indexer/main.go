package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/adapters/search"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
	"github.com/zatekoja/feedbacker/internal/infrastructure/store"
	"github.com/zatekoja/feedbacker/pkg/config"
	"github.com/zatekoja/feedbacker/pkg/secrets"
)

// Rebuilds the Typesense feedback index from the configured store, once or on an interval.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	if _, err := secrets.ApplyVaultSecrets(context.Background(), secrets.VaultConfigFromEnv()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load secrets from Vault")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.App.Env)

	if !cfg.Typesense.SearchEnabled() {
		log.Fatal().Msg("TYPESENSE_URL is required to reindex")
	}

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}
	if os.Getenv("RESET_TYPESENSE") == "true" {
		reset = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open feedback store")
	}
	defer closeStore()

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Typesense client")
	}
	index := search.NewTypesenseAdapter(tsClient)

	for {
		if reset {
			if err := tsClient.DropCollection(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to reset collection")
			}
			reset = false
		}

		start := time.Now()
		indexed, failed, err := indexOnce(ctx, tsClient, repo, index)
		if err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		} else {
			log.Info().Int("indexed", indexed).Int("failed", failed).Dur("took", time.Since(start)).Msg("Reindex complete")
		}

		if interval <= 0 {
			return
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, tsClient *typesense.Client, repo repositories.FeedbackRepository, index repositories.FeedbackSearchRepository) (int, int, error) {
	if err := tsClient.InitSchema(ctx); err != nil {
		return 0, 0, err
	}
	return reindex(ctx, repo, index)
}

// reindex copies every stored record into the search index and reports per-record failures.
func reindex(ctx context.Context, repo repositories.FeedbackRepository, index repositories.FeedbackSearchRepository) (int, int, error) {
	feedback, err := repo.ListByRecency(ctx)
	if err != nil {
		return 0, 0, err
	}

	log.Info().Int("count", len(feedback)).Msg("Indexing feedback")

	indexed, failed := 0, 0
	for _, f := range feedback {
		if err := ctx.Err(); err != nil {
			return indexed, failed, errors.Join(errors.New("reindex interrupted"), err)
		}
		if f == nil {
			continue
		}
		if err := index.Index(ctx, f); err != nil {
			failed++
			log.Warn().Err(err).Str("feedback_id", f.ID).Msg("Failed to index feedback")
			continue
		}
		indexed++
	}
	return indexed, failed, nil
}
