// Package store opens the feedback store selected by configuration.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/adapters/database"
	"github.com/zatekoja/feedbacker/internal/adapters/document"
	"github.com/zatekoja/feedbacker/internal/adapters/memory"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/mongo"
	"github.com/zatekoja/feedbacker/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/feedbacker/pkg/config"
)

// Open connects the configured feedback store and prepares its indexes or schema.
// The returned func releases the connection.
func Open(ctx context.Context, cfg *config.Config) (repositories.FeedbackRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, err := mongo.NewClient(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		adapter := document.NewFeedbackAdapter(client.Collection())
		if err := adapter.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to ensure feedback indexes")
		}
		return adapter, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}, nil

	case config.StoreDriverPostgres:
		client, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		adapter := database.NewFeedbackAdapter(client)
		if err := adapter.EnsureSchema(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to prepare feedback schema: %w", err)
		}
		return adapter, func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close PostgreSQL connection")
			}
		}, nil

	case config.StoreDriverMemory:
		log.Warn().Msg("Using in-memory feedback store; data is lost on restart")
		return memory.NewFeedbackAdapter(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
