package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/repository"
	"github.com/nuoiem/ms-go-donations/app/types"
	"github.com/nuoiem/ms-go-donations/config"
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error)
}

type AuthService struct {
	userRepo userRepository
	authCfg  config.AuthConfig
}

func NewAuthService(userRepo userRepository, authCfg config.AuthConfig) *AuthService {
	authCfg.JWTSecret = strings.TrimSpace(authCfg.JWTSecret)
	if authCfg.TokenTTL <= 0 {
		authCfg.TokenTTL = 24 * time.Hour
	}

	return &AuthService{
		userRepo: userRepo,
		authCfg:  authCfg,
	}
}

// Login finds or creates the user for a wallet address and issues a signed
// bearer token for it.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*entity.User, string, error) {
	if s.authCfg.JWTSecret == "" {
		return nil, "", ErrAuthNotConfigured
	}
	walletAddress := strings.ToLower(strings.TrimSpace(req.WalletAddress))
	if walletAddress == "" {
		return nil, "", ErrInvalidRequest
	}

	user, err := s.userRepo.FindByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		now := time.Now().UTC()
		user = &entity.User{
			WalletAddress: walletAddress,
			Email:         normalizeOptionalString(req.Email),
			Name:          normalizeOptionalString(req.Name),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if !errors.Is(err, repository.ErrUserAlreadyExists) {
				return nil, "", err
			}
			// Concurrent login created the user first.
			user, err = s.userRepo.FindByWalletAddress(ctx, walletAddress)
			if err != nil {
				return nil, "", err
			}
			if user == nil {
				return nil, "", ErrUserNotFound
			}
		}
	}

	token, err := s.issueToken(user.WalletAddress)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, walletAddress string) (*entity.User, error) {
	user, err := s.userRepo.FindByWalletAddress(ctx, strings.ToLower(strings.TrimSpace(walletAddress)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueToken(walletAddress string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   walletAddress,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.authCfg.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.authCfg.JWTSecret))
}
