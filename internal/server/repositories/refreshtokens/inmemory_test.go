package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
)

func TestInMemoryCreateAndFind(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	err := repo.Create(ctx, 1, "tok1", time.Hour)
	require.NoError(t, err)

	found, err := repo.Find(ctx, "tok1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.AccountID)
	assert.Equal(t, "tok1", found.Token)
	assert.True(t, found.Expires.After(time.Now()))

	_, err = repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "tok1", time.Hour))
	require.NoError(t, repo.Delete(ctx, "tok1"))

	_, err := repo.Find(ctx, "tok1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// a consumed token cannot be consumed again
	assert.ErrorIs(t, repo.Delete(ctx, "tok1"), common.ErrorNotFound)
}

func TestInMemoryDelete_SingleConsumer(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "tok1", time.Hour))

	// two callers both observe the token, then race to consume it:
	// exactly one delete wins
	_, err := repo.Find(ctx, "tok1")
	require.NoError(t, err)
	_, err = repo.Find(ctx, "tok1")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "tok1"))
	assert.ErrorIs(t, repo.Delete(ctx, "tok1"), common.ErrorNotFound)
}

func TestInMemoryCreate_PurgesExpired(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "stale", -time.Minute))
	require.NoError(t, repo.Create(ctx, 1, "live", time.Hour))

	_, err := repo.Find(ctx, "stale")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Find(ctx, "live")
	assert.NoError(t, err)
}

func TestInMemoryDeleteByAccount(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, 1, "a1", time.Hour))
	require.NoError(t, repo.Create(ctx, 1, "a2", time.Hour))
	require.NoError(t, repo.Create(ctx, 2, "b1", time.Hour))

	require.NoError(t, repo.DeleteByAccount(ctx, 1))

	_, err := repo.Find(ctx, "a1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Find(ctx, "a2")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	kept, err := repo.Find(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), kept.AccountID)
}
