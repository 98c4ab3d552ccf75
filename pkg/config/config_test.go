package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MongoRequiresURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MONGO_URI", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("TYPESENSE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, "feedbacker", cfg.Mongo.Database)
	assert.Equal(t, "feedbacks", cfg.Mongo.Collection)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Typesense.SearchEnabled())
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://postgres@localhost:5432/feedbacker?sslmode=disable")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
}

func TestLoad_MemoryNeedsNoConnectionString(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("MONGO_URI", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "couchdb")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PORT", "8081")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://feedback.example.com ,")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_TTL_SECONDS", "90")
	t.Setenv("TYPESENSE_URL", "http://typesense:8108")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://feedback.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 90, cfg.Redis.CacheTTLSeconds)
	assert.True(t, cfg.Typesense.SearchEnabled())
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{Driver: StoreDriverMemory},
		Server: ServerConfig{Port: 70000},
	}
	assert.Error(t, cfg.Validate())
}

func TestFromEnv_SkipsValidation(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_URI", "")
	t.Setenv("REDIS_ENABLED", "true")

	cfg := FromEnv()
	assert.True(t, cfg.Redis.Enabled)
	assert.Error(t, cfg.Validate())
}
