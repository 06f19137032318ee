package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nuoiem/ms-go-donations/app/factory"
	"github.com/nuoiem/ms-go-donations/app/mapper"
	"github.com/nuoiem/ms-go-donations/app/middleware"
	"github.com/nuoiem/ms-go-donations/app/service"
	"github.com/nuoiem/ms-go-donations/app/types"
)

type AuthController struct {
	authService *service.AuthService
	logger      logrus.FieldLogger
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      factory.NewModuleLogger("auth-controller"),
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	user, token, err := c.authService.Login(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAuthNotConfigured):
			c.logger.Error("Login attempted without a configured JWT secret")
			return writeError(ctx, http.StatusServiceUnavailable, "login is unavailable")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Login failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(&types.LoginResponse{
		Token: token,
		User:  mapper.UserToResponse(user),
	}))
}

func (c *AuthController) Me(ctx echo.Context) error {
	wallet := middleware.WalletAddress(ctx)
	if wallet == "" {
		return writeError(ctx, http.StatusUnauthorized, "not authenticated")
	}

	user, err := c.authService.GetUser(ctx.Request().Context(), wallet)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return writeError(ctx, http.StatusNotFound, "user not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get current user failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(mapper.UserToResponse(user)))
}
