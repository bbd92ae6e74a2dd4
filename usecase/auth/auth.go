package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

// LoginResult is returned to a successfully authenticated caller.
type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type UseCase struct {
	users  repository.UserRepository
	cache  repository.PrincipalCache
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func New(users repository.UserRepository, cache repository.PrincipalCache, secret string, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		cache:  cache,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Login verifies the email/password pair and issues a signed, time-limited
// token. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(uc.ttl).Unix(),
	})

	signed, err := token.SignedString(uc.secret)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "token signing failed", err)
	}

	return &LoginResult{
		Token:  signed,
		Role:   user.Role,
		UserID: user.ID,
	}, nil
}

// ResolvePrincipal turns a decoded token subject into the current user
// record, preferring the cache. The record is looked up on every request so a
// deactivated account stops authenticating even with a still-valid token.
func (uc *UseCase) ResolvePrincipal(ctx context.Context, userID string) (*domain.User, error) {
	if uc.cache != nil {
		if user, err := uc.cache.Get(ctx, userID); err == nil {
			return user, nil
		} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Warn("principal cache read failed", zap.Error(err))
		}
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Put(ctx, user); err != nil {
			uc.logger.Warn("principal cache write failed", zap.Error(err))
		}
	}
	return user, nil
}

// HashPassword produces the stored form of a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
