package app

import (
	"VillageEmpire/internal/account/domain"
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{4,20}$`)

const (
	minPasswordLen = 8
	maxPasswordLen = 64
)

// Session 登录成功后返回给客户端。
type Session struct {
	UID      int64
	Username string
	Token    string
}

type UserService struct {
	repo   UserRepo
	hasher PwdHasher
	issue  TokenIssuer
	idGen  IDGen
	clock  Clock
	log    Logger
}

func NewUserService(repo UserRepo, hasher PwdHasher, issue TokenIssuer, idGen IDGen, clock Clock, log Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		issue:  issue,
		idGen:  idGen,
		clock:  clock,
		log:    log.With(zap.String("component", "account")),
	}
}

// SignUp 注册并直接登录。
func (s *UserService) SignUp(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, reject(ReasonInvalidUsername)
	}
	if n := utf8.RuneCountInString(password); n < minPasswordLen || n > maxPasswordLen {
		return nil, reject(ReasonWeakPassword)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, ErrInternal.WithReason(ReasonPasswordHashFail).WithCause(err)
	}
	uid := s.idGen()
	if uid <= 0 {
		return nil, ErrInternal.WithReason(ReasonIDIssue)
	}
	u := &domain.User{UID: uid, Username: username, PasswordHash: hash, CreatedAtMs: s.clock()}
	if err = s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, reject(ReasonUserExists)
		}
		return nil, ErrUnavailable.WithReason(ReasonUserCreateFail).WithCause(err)
	}
	s.log.WithContext(ctx).Info("用户注册", zap.Int64("uid", uid), zap.String("username", username))
	return s.session(u)
}

// SignIn 用户不存在与密码错误返回同一个错误，不暴露账号是否存在。
func (s *UserService) SignIn(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUserNotFound):
		return nil, ErrInvalidCredentials
	default:
		return nil, ErrUnavailable.WithReason(ReasonUserRepoUnavailable).WithCause(err)
	}
	if !u.CheckPassword(password, s.hasher.Compare) {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *UserService) session(u *domain.User) (*Session, error) {
	token, err := s.issue(u.UID)
	if err != nil {
		return nil, ErrInternal.WithReason(ReasonTokenIssue).WithData("uid", u.UID).WithCause(err)
	}
	return &Session{UID: u.UID, Username: u.Username, Token: token}, nil
}
