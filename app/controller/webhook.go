package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nuoiem/ms-go-donations/app/factory"
	"github.com/nuoiem/ms-go-donations/app/mapper"
	"github.com/nuoiem/ms-go-donations/app/service"
	"github.com/nuoiem/ms-go-donations/app/types"
)

type WebhookController struct {
	donationService *service.DonationService
	logger          logrus.FieldLogger
}

func NewWebhookController(donationService *service.DonationService) *WebhookController {
	return &WebhookController{
		donationService: donationService,
		logger:          factory.NewModuleLogger("webhook-controller"),
	}
}

func (c *WebhookController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *WebhookController) ConfirmSettlement(ctx echo.Context) error {
	req, err := types.NewSettlementWebhookRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	order, err := c.donationService.ConfirmSettlement(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return writeError(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrInvalidStatus):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Confirm settlement failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(mapper.OrderToStatusResponse(order)))
}
