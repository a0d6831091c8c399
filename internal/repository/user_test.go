package repository_test

import (
	"context"
	"testing"

	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/repository"
	"github.com/cleancity/api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(kv store.KV) *repository.UserRepository {
	return repository.NewUserRepository(store.NewCollection[model.User](kv, "wm-users", nil))
}

func TestUserRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates trimmed user with role", func(t *testing.T) {
		repo := newUserRepo(store.NewMemory())
		u, err := repo.Register(ctx, model.SignupInput{Name: "  Ana ", Email: " ana@x.com ", Password: " secret "})
		require.NoError(t, err)

		assert.Equal(t, model.User{Name: "Ana", Email: "ana@x.com", Password: " secret ", Role: model.RoleUser}, u)
		assert.Equal(t, []model.User{u}, repo.List())
	})

	t.Run("email differing only in case is rejected", func(t *testing.T) {
		kv := store.NewMemory()
		repo := newUserRepo(kv)

		_, err := repo.Register(ctx, model.SignupInput{Name: "A", Email: "A@x.com", Password: "p"})
		require.NoError(t, err)

		_, err = repo.Register(ctx, model.SignupInput{Name: "a", Email: "a@x.com", Password: "p"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

		assert.Len(t, repo.List(), 1)
		assert.Len(t, newUserRepo(kv).Load(ctx), 1, "rejected sign-up writes nothing")
	})

	t.Run("newest first and persisted", func(t *testing.T) {
		kv := store.NewMemory()
		repo := newUserRepo(kv)
		for _, email := range []string{"one@x.com", "two@x.com"} {
			_, err := repo.Register(ctx, model.SignupInput{Name: email, Email: email, Password: "p"})
			require.NoError(t, err)
		}

		loaded := newUserRepo(kv).Load(ctx)
		require.Len(t, loaded, 2)
		assert.Equal(t, "two@x.com", loaded[0].Email)
		assert.False(t, newUserRepo(kv).Exists("ONE@X.COM"), "exists needs Load")

		reloaded := newUserRepo(kv)
		reloaded.Load(ctx)
		assert.True(t, reloaded.Exists("ONE@X.COM"))
	})

	t.Run("duplicate check sees loaded users", func(t *testing.T) {
		kv := store.NewMemory()
		require.NoError(t, kv.Set(ctx, "wm-users", []byte(`[{"name":"B","email":"b@x.com","password":"p","role":"user"}]`)))

		repo := newUserRepo(kv)
		repo.Load(ctx)
		_, err := repo.Register(ctx, model.SignupInput{Name: "B2", Email: "B@X.com", Password: "q"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}
