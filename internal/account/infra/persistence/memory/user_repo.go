package memory

import (
	"context"
	"sync"

	"VillageEmpire/internal/account/domain"
)

// UserRepo 进程内用户表，按用户名索引。
type UserRepo struct {
	mu     sync.RWMutex
	byName map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byName: make(map[string]domain.User)}
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound.WithData("username", username)
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[u.Username]; ok {
		return domain.ErrUserExists.WithData("username", u.Username)
	}
	r.byName[u.Username] = *u
	return nil
}
