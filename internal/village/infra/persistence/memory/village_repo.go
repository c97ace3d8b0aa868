package memory

import (
	"context"
	"sync"

	"VillageEmpire/internal/village/domain"
)

// VillageRepo 进程内存储，开发与测试使用。读写都做深拷贝。
type VillageRepo struct {
	mu      sync.RWMutex
	byOwner map[domain.OwnerID]*domain.Village
}

func NewVillageRepo() *VillageRepo {
	return &VillageRepo{byOwner: make(map[domain.OwnerID]*domain.Village)}
}

func (r *VillageRepo) FindByOwner(ctx context.Context, owner domain.OwnerID) (*domain.Village, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byOwner[owner]
	if !ok {
		return nil, domain.ErrVillageNotFound.WithData("owner", int64(owner))
	}
	return v.Clone(), nil
}

func (r *VillageRepo) Create(ctx context.Context, v *domain.Village) error {
	if err := ctx.Err(); err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[v.OwnerID]; ok {
		return domain.ErrVillageExists.WithData("owner", int64(v.OwnerID))
	}
	r.byOwner[v.OwnerID] = v.Clone()
	return nil
}

func (r *VillageRepo) Save(ctx context.Context, v *domain.Village, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byOwner[v.OwnerID]
	if !ok || old.ID != v.ID {
		return domain.ErrVillageNotFound.WithData("owner", int64(v.OwnerID))
	}
	if old.Version != expectedVersion {
		return domain.ErrVersionConflict.WithDataMap(map[string]any{
			"village":  int64(v.ID),
			"expected": expectedVersion,
			"actual":   old.Version,
		})
	}
	r.byOwner[v.OwnerID] = v.Clone()
	return nil
}

// Len 当前村庄数量。
func (r *VillageRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byOwner)
}
