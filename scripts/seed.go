package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/adapters/search"
	"github.com/zatekoja/feedbacker/internal/application/services"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
	"github.com/zatekoja/feedbacker/internal/infrastructure/store"
	"github.com/zatekoja/feedbacker/pkg/config"
	"github.com/zatekoja/feedbacker/pkg/secrets"
)

var sampleFeedback = []entities.FeedbackDraft{
	{Name: "Amaka", Message: "The onboarding session was clear and well paced."},
	{Message: "Please share the slides after the talk."},
	{Name: "Tunde", Message: "Audio in the back rows was hard to hear."},
	{Message: "More hands-on exercises next time would help."},
	{Name: "Ifeoma", Message: "Loved the live demo, thank you!"},
	{Message: "Could we get a longer Q&A slot?"},
}

func main() {
	if _, err := secrets.ApplyVaultSecrets(context.Background(), secrets.VaultConfigFromEnv()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load secrets from Vault")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-seed", cfg.App.Env)

	ctx := context.Background()

	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open feedback store")
	}
	defer closeStore()

	service := services.NewFeedbackService(repo)

	if cfg.Typesense.SearchEnabled() {
		tsClient, err := typesense.Open(ctx, &cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, seeding without index")
		} else {
			service.SetSearchIndex(search.NewTypesenseAdapter(tsClient))
		}
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, deleting existing feedback before seeding")
		existing, err := service.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list feedback")
		}
		for _, f := range existing {
			if _, err := service.Delete(ctx, f.ID); err != nil {
				log.Fatal().Err(err).Str("feedback_id", f.ID).Msg("Failed to delete feedback")
			}
		}
	}

	created := 0
	for _, draft := range sampleFeedback {
		if _, err := service.Create(ctx, draft); err != nil {
			log.Error().Err(err).Str("message", draft.Message).Msg("Failed to seed feedback")
			continue
		}
		created++
	}

	log.Info().Int("created", created).Str("store", cfg.Store.Driver).Msg("Seeding complete")
}
