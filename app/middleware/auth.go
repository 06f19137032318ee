package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nuoiem/ms-go-donations/app/types"
)

const walletAddressContextKey = "wallet_address"

// RequireBearer validates the Authorization bearer token and stores the
// wallet address it was issued for on the request context.
func RequireBearer(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if !strings.HasPrefix(header, "Bearer ") {
				return ctx.JSON(http.StatusUnauthorized, types.NewErrorResponse("missing bearer token"))
			}
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
				return ctx.JSON(http.StatusUnauthorized, types.NewErrorResponse("invalid or expired token"))
			}

			ctx.Set(walletAddressContextKey, claims.Subject)
			return next(ctx)
		}
	}
}

// WalletAddress returns the wallet address stored by RequireBearer, or ""
// when the request was not authenticated.
func WalletAddress(ctx echo.Context) string {
	if value, ok := ctx.Get(walletAddressContextKey).(string); ok {
		return value
	}
	return ""
}

// RequireWebhookKey guards webhook routes with a shared API key carried in
// the X-API-Key header.
func RequireWebhookKey(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if apiKey == "" {
				return ctx.JSON(http.StatusUnauthorized, types.NewErrorResponse("webhook key is not configured"))
			}
			received := strings.TrimSpace(ctx.Request().Header.Get("X-API-Key"))
			if subtle.ConstantTimeCompare([]byte(received), []byte(apiKey)) != 1 {
				return ctx.JSON(http.StatusUnauthorized, types.NewErrorResponse("invalid webhook key"))
			}
			return next(ctx)
		}
	}
}
