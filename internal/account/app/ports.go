package app

import (
	"VillageEmpire/internal/account/domain"
	"VillageEmpire/modules/kit/logx"
	"context"
)

type Logger = logx.Logger

// UserRepo 用户名唯一，Create 遇到重名返回 domain.ErrUserExists。
type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// PwdHasher 密码哈希与比对。
type PwdHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenIssuer 为 uid 签发登录凭证。
type TokenIssuer func(uid int64) (string, error)

type IDGen func() int64

type Clock func() int64
