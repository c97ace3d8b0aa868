package mysql

import (
	"context"
	"errors"

	"VillageEmpire/internal/village/domain"
	"VillageEmpire/internal/village/infra/persistence/model"

	"gorm.io/gorm"
)

type VillageRepo struct {
	db *gorm.DB
}

func NewVillageRepo(db *gorm.DB) *VillageRepo {
	return &VillageRepo{db: db}
}

func (r *VillageRepo) WithTx(tx *gorm.DB) *VillageRepo {
	return &VillageRepo{
		db: tx,
	}
}

// AutoMigrate 开发环境建表。
func (r *VillageRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&model.Village{})
}

func (r *VillageRepo) FindByOwner(ctx context.Context, owner domain.OwnerID) (*domain.Village, error) {
	var m model.Village
	err := r.db.WithContext(ctx).Where("owner_id = ?", int64(owner)).First(&m).Error

	switch {
	case err == nil:
		return model.RowToVillage(&m), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 技术错误 → 业务错误
		return nil, domain.ErrVillageNotFound.WithData("owner", int64(owner))
	default:
		//  纯技术错误（连接超时等），是无法转换的技术错误，保持原样或包装返回给上级
		return nil, domain.ErrSystemUnavailable.WithData("owner", int64(owner)).WithCause(err)
	}
}

func (r *VillageRepo) Create(ctx context.Context, v *domain.Village) error {
	err := r.db.WithContext(ctx).Create(model.VillageToRow(v)).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrVillageExists.WithData("owner", int64(v.OwnerID))
	default:
		return domain.ErrSystemUnavailable.WithData("owner", int64(v.OwnerID)).WithCause(err)
	}
}

// Save 在事务内按版本号更新一行；影响行数为 0 视为版本冲突。
func (r *VillageRepo) Save(ctx context.Context, v *domain.Village, expectedVersion int64) error {
	row := model.VillageToRow(v)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Village{}).
			Where("id = ? AND version = ?", row.ID, expectedVersion).
			Select(model.SaveColumns).
			Updates(row)
		if res.Error != nil {
			return domain.ErrSystemUnavailable.WithData("village", row.ID).WithCause(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrVersionConflict.WithDataMap(map[string]any{
				"village":  row.ID,
				"expected": expectedVersion,
			})
		}
		return nil
	})
}
