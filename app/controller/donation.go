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

type DonationController struct {
	donationService *service.DonationService
	logger          logrus.FieldLogger
}

func NewDonationController(donationService *service.DonationService) *DonationController {
	return &DonationController{
		donationService: donationService,
		logger:          factory.NewModuleLogger("donations-controller"),
	}
}

func (c *DonationController) CreatePayment(ctx echo.Context) error {
	req, err := types.NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	req.WalletAddress = middleware.WalletAddress(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	order, paymentURL, err := c.donationService.CreatePayment(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrAmountBelowMinimum):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrOrderAlreadyExists):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create payment failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(&types.CreatePaymentResponse{
		OrderID:     order.OrderID,
		PaymentURL:  paymentURL,
		AmountVND:   order.AmountVND,
		TokenAmount: order.TokenAmount,
	}))
}

// HandleGatewayReturn receives the browser coming back from VNPay and always
// answers with a redirect to the result page; the verdict travels in the
// query string.
func (c *DonationController) HandleGatewayReturn(ctx echo.Context) error {
	redirect, err := c.donationService.HandleGatewayReturn(ctx.Request().Context(), ctx.QueryParams())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Handle gateway return failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.Redirect(http.StatusFound, redirect)
}

func (c *DonationController) GetOrderStatus(ctx echo.Context) error {
	req, err := types.NewGetOrderStatusRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	req.WalletAddress = middleware.WalletAddress(ctx)
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	order, err := c.donationService.GetOrderStatus(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return writeError(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrWalletMismatch):
			return writeError(ctx, http.StatusForbidden, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get order status failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(mapper.OrderToStatusResponse(order)))
}

func (c *DonationController) ListTransactions(ctx echo.Context) error {
	req, err := types.NewListTransactionsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if wallet := middleware.WalletAddress(ctx); wallet != "" {
		req.WalletAddress = wallet
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.donationService.ListTransactions(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List transactions failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(mapper.OrdersToTransactionResponses(items)))
}

func (c *DonationController) GetExchangeRate(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, types.NewSuccessResponse(c.donationService.ExchangeRate()))
}

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, types.NewErrorResponse(message))
}
