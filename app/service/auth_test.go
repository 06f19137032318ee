package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/repository"
	"github.com/nuoiem/ms-go-donations/app/types"
	"github.com/nuoiem/ms-go-donations/config"
)

type serviceUserRepo struct {
	users     map[string]*entity.User
	nextID    uint64
	createErr error
}

func newServiceUserRepo() *serviceUserRepo {
	return &serviceUserRepo{
		users:  map[string]*entity.User{},
		nextID: 1,
	}
}

func (r *serviceUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.WalletAddress]; ok {
		return repository.ErrUserAlreadyExists
	}
	id := r.nextID
	r.nextID++
	copyItem := *user
	copyItem.ID = id
	r.users[user.WalletAddress] = &copyItem
	user.ID = id
	return nil
}

func (r *serviceUserRepo) FindByWalletAddress(_ context.Context, walletAddress string) (*entity.User, error) {
	item, ok := r.users[walletAddress]
	if !ok {
		return nil, nil
	}
	copyItem := *item
	return &copyItem, nil
}

func newTestAuthService(userRepo *serviceUserRepo) *AuthService {
	return NewAuthService(userRepo, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestLoginCreatesUserAndIssuesToken(t *testing.T) {
	userRepo := newServiceUserRepo()
	svc := newTestAuthService(userRepo)

	user, token, err := svc.Login(context.Background(), &types.LoginRequest{
		WalletAddress: "0xAbC1111111111111111111111111111111111111",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.WalletAddress != "0xabc1111111111111111111111111111111111111" {
		t.Fatalf("expected lower-cased wallet address, got %q", user.WalletAddress)
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	if claims.Subject != user.WalletAddress {
		t.Fatalf("expected wallet subject, got %q", claims.Subject)
	}
}

func TestLoginReusesExistingUser(t *testing.T) {
	userRepo := newServiceUserRepo()
	svc := newTestAuthService(userRepo)

	first, _, err := svc.Login(context.Background(), &types.LoginRequest{
		WalletAddress: "0x1111111111111111111111111111111111111111",
	})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	second, _, err := svc.Login(context.Background(), &types.LoginRequest{
		WalletAddress: "0x1111111111111111111111111111111111111111",
	})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same user, got %d and %d", first.ID, second.ID)
	}
	if len(userRepo.users) != 1 {
		t.Fatalf("expected single user record, got %d", len(userRepo.users))
	}
}

func TestLoginRequiresConfiguredSecret(t *testing.T) {
	svc := NewAuthService(newServiceUserRepo(), config.AuthConfig{})

	_, _, err := svc.Login(context.Background(), &types.LoginRequest{
		WalletAddress: "0x1111111111111111111111111111111111111111",
	})
	if !errors.Is(err, ErrAuthNotConfigured) {
		t.Fatalf("expected ErrAuthNotConfigured, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	userRepo := newServiceUserRepo()
	svc := newTestAuthService(userRepo)

	if _, err := svc.GetUser(context.Background(), "0x1111111111111111111111111111111111111111"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, _, err := svc.Login(context.Background(), &types.LoginRequest{
		WalletAddress: "0x1111111111111111111111111111111111111111",
	}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.GetUser(context.Background(), "0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.WalletAddress != "0x1111111111111111111111111111111111111111" {
		t.Fatalf("unexpected wallet address: %q", user.WalletAddress)
	}
}
