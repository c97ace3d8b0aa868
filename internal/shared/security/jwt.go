package security

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL 登录态有效期
	TokenTTL    = 7 * 24 * time.Hour
	tokenIssuer = "village"
)

var (
	ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")
	ErrTokenUID         = errors.New("token uid invalid")
	ErrJWTSecretSample  = errors.New("JWT_SECRET is still the sample value")
)

// SampleSecret configs/conf.yml 自带的占位密钥，只允许开发模式使用。
const SampleSecret = "change-me-in-production"

// CheckSecret 启动时调用：密钥缺失总是报错，非开发模式还拒绝占位密钥。
func CheckSecret(dev bool) error {
	key, err := signingKey()
	if err != nil {
		return err
	}
	if !dev && string(key) == SampleSecret {
		return ErrJWTSecretSample
	}
	return nil
}

// Claims 玩家登录态，uid 即村庄 owner。
type Claims struct {
	Uid int64 `json:"uid"`
	jwt.RegisteredClaims
}

// 密钥每次现读环境变量，配置热更后立即生效。
func signingKey() ([]byte, error) {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, ErrJWTSecretMissing
}

// Award 为 uid 签发 HS256 token。
func Award(uid int64) (string, error) {
	if uid <= 0 {
		return "", ErrTokenUID
	}
	key, err := signingKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Uid: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}).SignedString(key)
}

// ParseToken 校验签名、签发方与过期时间，只接受 HS256。
func ParseToken(raw string) (*Claims, error) {
	key, err := signingKey()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.Uid <= 0 {
		return nil, ErrTokenUID
	}
	return claims, nil
}
