package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award(1); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award(42)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.Uid != 42 {
		t.Fatalf("期望 claims.Uid==42, got=%v", claims)
	}
}

func TestParseToken_密钥不同应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := Award(7)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	if _, err = ParseToken(token); err == nil {
		t.Fatalf("换密钥后应解析失败")
	}
}

func TestParseToken_拒绝非HS256(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	claims := &Claims{Uid: 1, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err = ParseToken(raw); err == nil {
		t.Fatalf("HS512 token 应被拒绝")
	}
}

func TestAward_非法uid拒绝签发(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	if _, err := Award(0); err != ErrTokenUID {
		t.Fatalf("err=%v, want ErrTokenUID", err)
	}
}

func TestParseToken_缺少过期时间应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	claims := &Claims{Uid: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err = ParseToken(raw); err == nil {
		t.Fatalf("无 exp 的 token 应被拒绝")
	}
}

func TestCheckSecret_非开发模式拒绝占位密钥(t *testing.T) {
	t.Setenv("JWT_SECRET", SampleSecret)
	if err := CheckSecret(false); !errors.Is(err, ErrJWTSecretSample) {
		t.Fatalf("期望 ErrJWTSecretSample, got=%v", err)
	}
	if err := CheckSecret(true); err != nil {
		t.Fatalf("开发模式允许占位密钥, got=%v", err)
	}

	t.Setenv("JWT_SECRET", "")
	if err := CheckSecret(true); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("期望 ErrJWTSecretMissing, got=%v", err)
	}

	t.Setenv("JWT_SECRET", "a-real-secret-value")
	if err := CheckSecret(false); err != nil {
		t.Fatalf("正常密钥应通过, got=%v", err)
	}
}
