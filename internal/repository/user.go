package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/store"
	"go.uber.org/zap"
)

// UserRepository keeps registered accounts, newest first. Accounts are
// never updated or removed.
type UserRepository struct {
	mu    sync.RWMutex
	coll  *store.Collection[model.User]
	users []model.User
	settings
}

func NewUserRepository(coll *store.Collection[model.User], opts ...Option) *UserRepository {
	return &UserRepository{
		coll:     coll,
		users:    []model.User{},
		settings: newSettings(opts),
	}
}

func (r *UserRepository) Load(ctx context.Context) []model.User {
	users := r.coll.Load(ctx)

	r.mu.Lock()
	r.users = users
	r.mu.Unlock()

	r.logger.Info("users loaded", zap.Int("count", len(users)))
	return r.List()
}

func (r *UserRepository) List() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out
}

// Exists reports whether an account uses email, ignoring letter case.
func (r *UserRepository) Exists(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.existsLocked(strings.TrimSpace(email))
}

// Register creates an account. A case-insensitive email match returns
// ErrDuplicateEmail and nothing is written.
func (r *UserRepository) Register(ctx context.Context, in model.SignupInput) (model.User, error) {
	user := model.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Role:     model.RoleUser,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsLocked(user.Email) {
		return model.User{}, ErrDuplicateEmail
	}

	r.users = append([]model.User{user}, r.users...)
	if err := r.coll.Save(ctx, r.users); err != nil {
		r.logger.Error("flush users failed", zap.Error(err))
		return user, err
	}
	return user, nil
}

func (r *UserRepository) existsLocked(email string) bool {
	for _, u := range r.users {
		if strings.EqualFold(strings.TrimSpace(u.Email), email) {
			return true
		}
	}
	return false
}
