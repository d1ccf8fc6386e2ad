package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lMelkorl/b2bminiui/internal/database/postgres"
	platformconfig "github.com/lMelkorl/b2bminiui/internal/platform/config"
	"github.com/lMelkorl/b2bminiui/products/models"
)

func seed() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Kolye", Category: "Kolye", Price: 100, Stock: 3, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "Yüzük", Category: "Yüzük", Price: 200, Stock: 8, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func exerciseRepository(t *testing.T, repo Repository) {
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	created := models.Product{ID: "3", Name: "Küpe", Category: "Küpe", Price: 50, CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, created))
	require.ErrorIs(t, repo.Create(ctx, created), ErrDuplicate)

	updated, err := repo.Update(ctx, "3", func(p *models.Product) error {
		p.Stock = 12
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 12, updated.Stock)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "3", func(p *models.Product) error { return boom })
	require.ErrorIs(t, err, boom)

	_, err = repo.Update(ctx, "missing", func(*models.Product) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)

	got, err := repo.Get(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, 12, got.Stock)

	require.NoError(t, repo.Delete(ctx, "3"))
	require.ErrorIs(t, repo.Delete(ctx, "3"), ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "1", list[0].ID)
	require.Equal(t, "2", list[1].ID)

	// an older timestamp still lists after earlier inserts
	backdated := models.Product{ID: "0", Name: "Bilezik", Category: "Bilezik", Price: 75, CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, backdated))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"1", "2", "0"}, ids)
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository(seed()))
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping test: POSTGRES_DSN not set")
	}
	ctx := context.Background()

	client, err := postgres.NewClient(ctx, platformconfig.PostgreSQLConfig{DSN: dsn})
	if err != nil {
		t.Skipf("Skipping test: PostgreSQL not available: %v", err)
	}
	defer client.Close()

	require.NoError(t, client.Migrate(ctx))
	_, err = client.DB().ExecContext(ctx, `TRUNCATE products`)
	require.NoError(t, err)
	require.NoError(t, SeedPostgres(ctx, client, seed()))
	require.NoError(t, SeedPostgres(ctx, client, seed()))

	exerciseRepository(t, NewPostgresRepository(client))
}
