package service

import (
	"context"
	"time"

	"github.com/prodmanag/backend/internal/hash"
	"github.com/prodmanag/backend/internal/logging"
	"github.com/prodmanag/backend/internal/models"
	"github.com/prodmanag/backend/internal/repo"
	"github.com/prodmanag/backend/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// Register persists a new user and returns a signed access token. The email
// uniqueness check and the insert happen in one repo call, so a duplicate
// attempt never mutates state.
func (s *AuthService) Register(ctx context.Context, user *models.User, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return "", err
	}
	user.PasswordHash = pwHash

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		return "", err
	}

	token, err := tokens.SignAccessToken(user.ID, s.JWTSecret, time.Now())
	if err != nil {
		l.Error("register_error", "reason", "cannot sign token", "error", err)
		return "", err
	}
	return token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByCredentials(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := tokens.SignAccessToken(user.ID, s.JWTSecret, time.Now())
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return "", nil, err
	}
	return token, user, nil
}
