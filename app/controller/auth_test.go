package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/service"
	"github.com/nuoiem/ms-go-donations/config"
)

type controllerUserRepo struct {
	createFn              func(ctx context.Context, user *entity.User) error
	findByWalletAddressFn func(ctx context.Context, walletAddress string) (*entity.User, error)
}

func (r *controllerUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.createFn != nil {
		return r.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (r *controllerUserRepo) FindByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error) {
	if r.findByWalletAddressFn != nil {
		return r.findByWalletAddressFn(ctx, walletAddress)
	}
	return nil, nil
}

func newControllerAuthService(userRepo *controllerUserRepo) *service.AuthService {
	return service.NewAuthService(userRepo, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestLoginEndpoint(t *testing.T) {
	ctrl := NewAuthController(newControllerAuthService(&controllerUserRepo{}))

	rec := performJSON(t, ctrl.Login, "POST", "/api/auth/login",
		`{"walletAddress":"0x1111111111111111111111111111111111111111"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	if data["token"] == "" {
		t.Fatal("expected token in response")
	}
	user := data["user"].(map[string]interface{})
	if user["walletAddress"] != "0x1111111111111111111111111111111111111111" {
		t.Fatalf("unexpected user payload: %s", rec.Body.String())
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	ctrl := NewAuthController(newControllerAuthService(&controllerUserRepo{}))

	rec := performJSON(t, ctrl.Login, "POST", "/api/auth/login", `{"walletAddress":"nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	userRepo := &controllerUserRepo{
		findByWalletAddressFn: func(_ context.Context, walletAddress string) (*entity.User, error) {
			return &entity.User{ID: 1, WalletAddress: walletAddress}, nil
		},
	}
	ctrl := NewAuthController(newControllerAuthService(userRepo))

	e := echo.New()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("wallet_address", "0x1111111111111111111111111111111111111111")
	if err := ctrl.Me(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMeEndpointUnauthenticated(t *testing.T) {
	ctrl := NewAuthController(newControllerAuthService(&controllerUserRepo{}))

	rec := performJSON(t, ctrl.Me, "GET", "/api/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
