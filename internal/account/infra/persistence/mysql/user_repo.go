package mysql

import (
	"context"
	"errors"

	"VillageEmpire/internal/account/domain"

	"gorm.io/gorm"
)

type User struct {
	UID          int64  `gorm:"column:uid;primaryKey;autoIncrement:false"`
	Username     string `gorm:"column:username;size:20;uniqueIndex:uk_username"`
	PasswordHash string `gorm:"column:password_hash;size:72"`
	CreatedAtMs  int64  `gorm:"column:created_at_ms"`
}

func (User) TableName() string {
	return "user"
}

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&User{})
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	switch {
	case err == nil:
		return &domain.User{UID: m.UID, Username: m.Username, PasswordHash: m.PasswordHash, CreatedAtMs: m.CreatedAtMs}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domain.ErrUserNotFound.WithData("username", username)
	default:
		return nil, domain.ErrSystemUnavailable.WithData("username", username).WithCause(err)
	}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(&User{
		UID:          u.UID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAtMs:  u.CreatedAtMs,
	}).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrUserExists.WithData("username", u.Username)
	default:
		return domain.ErrSystemUnavailable.WithData("username", u.Username).WithCause(err)
	}
}
