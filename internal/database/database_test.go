package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/cleancity/api/internal/database"
	"github.com/cleancity/api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Connect(url, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	kv := database.NewKVStore(db)
	defer kv.Close()

	ctx := context.Background()
	key := "test-" + uuid.NewString()

	_, err = kv.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, kv.Set(ctx, key, []byte(`[{"id":1}]`)))
	require.NoError(t, kv.Set(ctx, key, []byte(`[{"id":2}]`)))

	type row struct {
		ID int64 `json:"id"`
	}
	got := store.NewCollection[row](kv, key, nil).Load(ctx)
	assert.Equal(t, []row{{ID: 2}}, got)
}
