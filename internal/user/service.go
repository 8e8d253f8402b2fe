package user

import (
	"context"
	"strings"

	"retailhub-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", params.Email),
	)

	if exists, err := s.repo.ExistsByEmail(ctx, params.Email); err != nil {
		log.Error("email existence check failed", zap.Error(err))
		return nil, err
	} else if exists {
		return nil, ErrEmailExists
	}

	if exists, err := s.repo.ExistsByUsername(ctx, params.Username); err != nil {
		log.Error("username existence check failed", zap.Error(err))
		return nil, err
	} else if exists {
		return nil, ErrUsernameExists
	}

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, params, hashed)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		// Unique index race: two registrations with the same email.
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, ErrEmailExists
		}
		if strings.Contains(err.Error(), "users_username_key") {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))

	return authResult(u, token), nil
}

func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login for unknown email")
		return nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login with wrong password", zap.Uint("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	if !u.Enabled {
		log.Warn("login for disabled account", zap.Uint("user_id", u.ID))
		return nil, ErrAccountDisabled
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	return authResult(u, token), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func authResult(u *User, token string) *AuthResult {
	return &AuthResult{
		UserID:    u.ID,
		Token:     token,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
