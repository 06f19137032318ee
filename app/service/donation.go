package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/gateway"
	"github.com/nuoiem/ms-go-donations/app/repository"
	"github.com/nuoiem/ms-go-donations/app/types"
	"github.com/nuoiem/ms-go-donations/config"
)

const (
	defaultListLimit = 50
	defaultBatchSize = 100

	tokenAmountPrecision = 6
)

type orderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error)
	ListByWallet(ctx context.Context, walletAddress string, limit int) ([]*entity.Order, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Order, error)
}

type orderEventRepository interface {
	Create(ctx context.Context, event *entity.OrderEvent) error
}

type paymentGateway interface {
	BuildPaymentURL(input gateway.PaymentInput) (string, error)
	VerifyReturn(params url.Values) error
}

type DonationService struct {
	orderRepo   orderRepository
	eventRepo   orderEventRepository
	gateway     paymentGateway
	ordersCfg   config.OrdersConfig
	exchangeCfg config.ExchangeConfig
	resultURL   string
}

func NewDonationService(
	orderRepo orderRepository,
	eventRepo orderEventRepository,
	paymentGw paymentGateway,
	ordersCfg config.OrdersConfig,
	exchangeCfg config.ExchangeConfig,
	resultURL string,
) *DonationService {
	if exchangeCfg.VNDPerToken <= 0 {
		exchangeCfg.VNDPerToken = 1000
	}

	return &DonationService{
		orderRepo:   orderRepo,
		eventRepo:   eventRepo,
		gateway:     paymentGw,
		ordersCfg:   ordersCfg,
		exchangeCfg: exchangeCfg,
		resultURL:   strings.TrimSpace(resultURL),
	}
}

func (s *DonationService) CreatePayment(ctx context.Context, req *types.CreatePaymentRequest) (*entity.Order, string, error) {
	walletAddress := strings.TrimSpace(req.WalletAddress)
	if walletAddress == "" {
		return nil, "", ErrInvalidRequest
	}
	if req.AmountVND < s.ordersCfg.MinAmountVND {
		return nil, "", fmt.Errorf("%w: minimum is %d VND", ErrAmountBelowMinimum, s.ordersCfg.MinAmountVND)
	}

	now := time.Now().UTC()
	order := &entity.Order{
		OrderID:       uuid.NewString(),
		WalletAddress: walletAddress,
		AmountVND:     req.AmountVND,
		TokenAmount:   s.tokenAmountFor(req.AmountVND),
		Status:        entity.OrderStatusPending,
		BankCode:      normalizeOptionalString(req.BankCode),
		Language:      string(gateway.NormalizeLanguage(req.Language)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	paymentURL, err := s.gateway.BuildPaymentURL(gateway.PaymentInput{
		OrderID:   order.OrderID,
		AmountVND: order.AmountVND,
		BankCode:  strings.TrimSpace(req.BankCode),
		Locale:    gateway.Language(order.Language),
		IPAddr:    req.ClientIP,
		CreatedAt: now,
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderAlreadyExists) {
			return nil, "", ErrOrderAlreadyExists
		}
		return nil, "", err
	}

	_ = s.eventRepo.Create(ctx, &entity.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		NewStatus: order.Status,
		CreatedAt: now,
	})

	return order, paymentURL, nil
}

// HandleGatewayReturn processes the browser redirect coming back from VNPay
// and produces the URL of the result page, carrying the verdict in plain
// success/orderId/amount/message parameters. The order transitions to
// processing on a gateway success (settlement is confirmed separately) and to
// failed otherwise. Redirects for already-settled orders change nothing.
func (s *DonationService) HandleGatewayReturn(ctx context.Context, params url.Values) (string, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, strings.TrimSpace(params.Get("vnp_TxnRef")))
	if err != nil {
		return "", err
	}

	lang := gateway.LanguageVietnamese
	if order != nil {
		lang = gateway.NormalizeLanguage(order.Language)
	}

	if err := s.gateway.VerifyReturn(params); err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			return s.resultRedirect(false, "", nil, gateway.MessageInvalidSignature(lang)), nil
		}
		return "", err
	}

	outcome := gateway.ParseRedirect(params, lang)
	if outcome.OrderID == nil || order == nil {
		return s.resultRedirect(false, "", nil, gateway.MessageNoPaymentInfo(lang)), nil
	}

	if !order.Status.Terminal() {
		now := time.Now().UTC()
		oldStatus := order.Status
		if outcome.Success {
			order.Status = entity.OrderStatusProcessing
		} else {
			order.Status = entity.OrderStatusFailed
		}
		if outcome.Gateway != nil {
			order.GatewayResponseCode = normalizeOptionalString(outcome.Gateway.ResponseCode)
			order.GatewayTransactionNo = normalizeOptionalString(outcome.Gateway.TransactionNo)
			if order.BankCode == nil {
				order.BankCode = normalizeOptionalString(outcome.Gateway.BankCode)
			}
		}
		order.UpdatedAt = now

		if err := s.orderRepo.Update(ctx, order); err != nil {
			return "", err
		}

		_ = s.eventRepo.Create(ctx, &entity.OrderEvent{
			OrderID:   order.ID,
			EventType: "gateway_return",
			OldStatus: &oldStatus,
			NewStatus: order.Status,
			CreatedAt: now,
		})
	}

	message := ""
	if outcome.Message != nil {
		message = *outcome.Message
	}
	amount := order.AmountVND
	return s.resultRedirect(outcome.Success, order.OrderID, &amount, message), nil
}

func (s *DonationService) GetOrderStatus(ctx context.Context, req *types.GetOrderStatusRequest) (*entity.Order, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if req.WalletAddress != "" && !strings.EqualFold(req.WalletAddress, order.WalletAddress) {
		return nil, ErrWalletMismatch
	}
	return order, nil
}

func (s *DonationService) ListTransactions(ctx context.Context, req *types.ListTransactionsRequest) ([]*entity.Order, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.orderRepo.ListByWallet(ctx, req.WalletAddress, limit)
}

func (s *DonationService) ExchangeRate() *types.ExchangeRateResponse {
	return &types.ExchangeRateResponse{
		VNDPerToken: s.exchangeCfg.VNDPerToken,
		TokenSymbol: s.exchangeCfg.TokenSymbol,
	}
}

// ConfirmSettlement records the on-chain verdict delivered by the settlement
// webhook. Completed settlements carry the transaction hash. Replays of the
// same verdict are idempotent; conflicting verdicts on a settled order are
// rejected.
func (s *DonationService) ConfirmSettlement(ctx context.Context, req *types.SettlementWebhookRequest) (*entity.Order, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	newStatus := entity.OrderStatus(req.Status)
	if order.Status.Terminal() {
		if order.Status == newStatus {
			return order, nil
		}
		return nil, fmt.Errorf("%w: order already settled as %s", ErrInvalidStatus, order.Status)
	}

	now := time.Now().UTC()
	oldStatus := order.Status
	order.Status = newStatus
	if newStatus == entity.OrderStatusCompleted {
		order.TxHash = normalizeOptionalString(req.TxHash)
	}
	order.UpdatedAt = now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	_ = s.eventRepo.Create(ctx, &entity.OrderEvent{
		OrderID:   order.ID,
		EventType: "settlement_confirmed",
		OldStatus: &oldStatus,
		NewStatus: order.Status,
		CreatedAt: now,
	})

	return order, nil
}

func (s *DonationService) tokenAmountFor(amountVND int64) string {
	amount := decimal.NewFromInt(amountVND)
	rate := decimal.NewFromInt(s.exchangeCfg.VNDPerToken)
	return amount.DivRound(rate, tokenAmountPrecision).String()
}

func (s *DonationService) resultRedirect(success bool, orderID string, amount *int64, message string) string {
	params := url.Values{}
	params.Set("success", strconv.FormatBool(success))
	if orderID != "" {
		params.Set("orderId", orderID)
	}
	if amount != nil {
		params.Set("amount", strconv.FormatInt(*amount, 10))
	}
	if message != "" {
		params.Set("message", message)
	}
	return s.resultURL + "?" + params.Encode()
}

func (s *DonationService) batchSize() int {
	if s.ordersCfg.JobBatchSize > 0 {
		return int(s.ordersCfg.JobBatchSize)
	}
	return defaultBatchSize
}

func normalizeOptionalString(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
