package portfolio

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestPool connects to the database named by TEST_DB_DSN, which must
// already carry the migrated schema. Skips when unset.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))
	t.Cleanup(pool.Close)
	return pool
}

func TestProjectSoftDeleteIdempotent(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewProjectRepo(pool)
	ctx := context.Background()

	in := validProjectInput()
	in.Name = "soft-delete-" + uuid.NewString()
	in.URL = "https://example.com/" + uuid.NewString()

	p, err := repo.Create(ctx, in)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(ctx, "delete from projects where id = $1", p.ID)
	})

	inList := func() bool {
		items, err := repo.List(ctx)
		require.NoError(t, err)
		for _, it := range items {
			if it.ID == p.ID {
				return true
			}
		}
		return false
	}
	require.True(t, inList())

	found, err := repo.SoftDelete(ctx, p.ID.String())
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, inList(), "soft-deleted project must leave the active set")

	// Deleting again still reports the row as found; only a missing id is
	// an error for the caller.
	found, err = repo.SoftDelete(ctx, p.ID.String())
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.SoftDelete(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)

	// The partial unique index only guards active rows, so the name is
	// reusable after the delete.
	p2, err := repo.Create(ctx, in)
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Exec(ctx, "delete from projects where id = $1", p2.ID)
	})
}
