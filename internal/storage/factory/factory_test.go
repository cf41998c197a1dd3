package factory

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/pagekit/internal/storage"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *StorageConfig)
	}{
		{
			name:    "missing type",
			env:     map[string]string{"STORAGE_TYPE": ""},
			wantErr: true,
		},
		{
			name:    "unknown type",
			env:     map[string]string{"STORAGE_TYPE": "mongo"},
			wantErr: true,
		},
		{
			name: "in memory with seed",
			env:  map[string]string{"STORAGE_TYPE": "in_mem", "SEED_FILE": "seed.yaml"},
			check: func(t *testing.T, cfg *StorageConfig) {
				assert.Equal(t, storage.InMem, cfg.Type)
				assert.Equal(t, "seed.yaml", cfg.SeedFile)
				assert.Nil(t, cfg.Pg)
				assert.Nil(t, cfg.Es)
			},
		},
		{
			name: "postgres",
			env: map[string]string{
				"STORAGE_TYPE":         "pg",
				"PG_CONNECTION_STRING": "postgres://localhost/db",
				"PG_MAX_CONNS":         "8",
				"PG_LOG_LEVEL":         "debug",
			},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Pg)
				assert.Equal(t, "postgres://localhost/db", cfg.Pg.ConnStr)
				assert.Equal(t, int32(8), cfg.Pg.MaxConns)
				assert.Equal(t, tracelog.LogLevelDebug, cfg.Pg.LogLevel)
			},
		},
		{
			name:    "postgres without connection string",
			env:     map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": ""},
			wantErr: true,
		},
		{
			name: "postgres with bad max conns",
			env: map[string]string{
				"STORAGE_TYPE":         "pg",
				"PG_CONNECTION_STRING": "postgres://localhost/db",
				"PG_MAX_CONNS":         "zero",
			},
			wantErr: true,
		},
		{
			name: "elasticsearch",
			env: map[string]string{
				"STORAGE_TYPE":  "es",
				"ES_ADDRESSES":  "http://a:9200, http://b:9200,",
				"ES_INDEX_NAME": "articles",
			},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Es)
				assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Es.Addresses)
				assert.Equal(t, "articles", cfg.Es.IndexName)
			},
		},
		{
			name:    "elasticsearch without addresses",
			env:     map[string]string{"STORAGE_TYPE": "es", "ES_ADDRESSES": "", "ES_INDEX_NAME": "articles"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PG_MAX_CONNS", "PG_LOG_LEVEL", "SEED_FILE"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestNewBackend_InMemSeeded(t *testing.T) {
	ctx := context.Background()
	backend, err := NewBackend(ctx, &StorageConfig{Type: storage.InMem, SeedFile: "../../../testdata/articles.yaml"})
	require.NoError(t, err)
	defer backend.Close()

	assert.True(t, backend.HealthChecker.Healthy(ctx))

	n, err := backend.Articles(storage.ArticleFilter{Category: "politics"}).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewBackend_MissingSeedFile(t *testing.T) {
	_, err := NewBackend(context.Background(), &StorageConfig{Type: storage.InMem, SeedFile: "does-not-exist.yaml"})
	assert.Error(t, err)
}

func TestNewBackend_Unsupported(t *testing.T) {
	_, err := NewBackend(context.Background(), &StorageConfig{Type: "mongo"})
	assert.Error(t, err)
}
