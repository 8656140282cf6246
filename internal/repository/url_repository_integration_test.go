//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Kosench/short-url/internal/config"
	"github.com/Kosench/short-url/internal/database"
	apperrors "github.com/Kosench/short-url/internal/errors"
	"github.com/Kosench/short-url/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	pgCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "urlshortener",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgCont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	host, err := pgCont.Host(ctx)
	require.NoError(t, err)
	port, err := pgCont.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.Config{
		Database: config.DatabaseConfig{
			Host:         host,
			Port:         port.Port(),
			User:         "test",
			Password:     "test",
			DBName:       "urlshortener",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
	}

	require.NoError(t, database.Migrate(cfg.DSN()))

	db, err := database.Connect(ctx, cfg.DSN(), cfg.Database)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestPostgresURLRepository_Integration(t *testing.T) {
	db := setupPostgres(t)
	repo := NewPostgresURLRepository(db, 5*time.Second)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		url := &model.URL{Key: "intA001", OriginalURL: "https://example.com/a"}
		require.NoError(t, repo.Create(ctx, url))

		assert.NotZero(t, url.ID)
		assert.Zero(t, url.ClickCount)
		assert.False(t, url.CreatedAt.IsZero())

		got, err := repo.GetByKey(ctx, "intA001")
		require.NoError(t, err)
		assert.Equal(t, url.ID, got.ID)
		assert.Equal(t, "https://example.com/a", got.OriginalURL)

		exists, err := repo.ExistsByKey(ctx, "intA001")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unique constraint", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &model.URL{Key: "intB001", OriginalURL: "https://example.com/b"}))

		err := repo.Create(ctx, &model.URL{Key: "intB001", OriginalURL: "https://example.com/other"})
		assert.ErrorIs(t, err, apperrors.ErrKeyExists)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByKey(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrURLNotFound)

		_, err = repo.IncrementClickCount(ctx, -1)
		assert.ErrorIs(t, err, apperrors.ErrURLNotFound)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		url := &model.URL{Key: "intC001", OriginalURL: "https://example.com/c"}
		require.NoError(t, repo.Create(ctx, url))

		const clicks = 50
		var wg sync.WaitGroup
		for i := 0; i < clicks; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.IncrementClickCount(ctx, url.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.GetByKey(ctx, "intC001")
		require.NoError(t, err)
		assert.Equal(t, int64(clicks), got.ClickCount)
	})

	t.Run("transaction rollback", func(t *testing.T) {
		err := repo.WithTx(ctx, func(tx URLRepository) error {
			if err := tx.Create(ctx, &model.URL{Key: "intD001", OriginalURL: "https://example.com/d"}); err != nil {
				return err
			}
			return tx.Create(ctx, &model.URL{Key: "intD001", OriginalURL: "https://example.com/d"})
		})
		assert.ErrorIs(t, err, apperrors.ErrKeyExists)

		exists, err := repo.ExistsByKey(ctx, "intD001")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
