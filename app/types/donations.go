package types

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	ipfsCIDPattern       = regexp.MustCompile(`^[A-Za-z0-9]{16,128}$`)
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{Success: true, Data: data}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: message}
}

// CreatePaymentRequest carries the checkout parameters. The wallet address is
// never read from the body; the controller fills it from the bearer token.
type CreatePaymentRequest struct {
	WalletAddress string `json:"-"`
	AmountVND     int64  `json:"amountVND"`
	BankCode      string `json:"bankCode"`
	Language      string `json:"language"`
	ClientIP      string `json:"-"`
}

func NewCreatePaymentRequestFromContext(ctx echo.Context) (*CreatePaymentRequest, error) {
	var body CreatePaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.BankCode = strings.TrimSpace(body.BankCode)
	body.Language = strings.ToLower(strings.TrimSpace(body.Language))
	body.ClientIP = ctx.RealIP()

	return &body, nil
}

func (r *CreatePaymentRequest) Validate() error {
	if r.WalletAddress == "" {
		return errors.New("walletAddress is required")
	}
	if !walletAddressPattern.MatchString(r.WalletAddress) {
		return errors.New("walletAddress must be a 0x-prefixed hex address")
	}
	if r.AmountVND <= 0 {
		return errors.New("amountVND must be > 0")
	}
	if r.Language != "" && r.Language != "vn" && r.Language != "en" {
		return errors.New("language must be vn or en")
	}
	return nil
}

// GetOrderStatusRequest identifies one order read. WalletAddress is the
// authenticated caller's wallet, set by the controller, and drives the
// ownership check.
type GetOrderStatusRequest struct {
	OrderID       string
	WalletAddress string
}

func NewGetOrderStatusRequestFromContext(ctx echo.Context) (*GetOrderStatusRequest, error) {
	return &GetOrderStatusRequest{
		OrderID: strings.TrimSpace(ctx.Param("orderId")),
	}, nil
}

func (r *GetOrderStatusRequest) Validate() error {
	if r.OrderID == "" {
		return errors.New("orderId is required")
	}
	return nil
}

type ListTransactionsRequest struct {
	WalletAddress string
	Limit         int
}

func NewListTransactionsRequestFromContext(ctx echo.Context) (*ListTransactionsRequest, error) {
	req := &ListTransactionsRequest{
		Limit: 50,
	}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}

func (r *ListTransactionsRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 100 {
		return errors.New("limit must be between 1 and 100")
	}
	return nil
}

type LoginRequest struct {
	WalletAddress string `json:"walletAddress"`
	Email         string `json:"email"`
	Name          string `json:"name"`
}

func NewLoginRequestFromContext(ctx echo.Context) (*LoginRequest, error) {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.WalletAddress = strings.TrimSpace(body.WalletAddress)
	body.Email = strings.TrimSpace(body.Email)
	body.Name = strings.TrimSpace(body.Name)

	return &body, nil
}

func (r *LoginRequest) Validate() error {
	if r.WalletAddress == "" {
		return errors.New("walletAddress is required")
	}
	if !walletAddressPattern.MatchString(r.WalletAddress) {
		return errors.New("walletAddress must be a 0x-prefixed hex address")
	}
	return nil
}

type SettlementWebhookRequest struct {
	OrderID string `json:"orderId"`
	TxHash  string `json:"txHash"`
	Status  string `json:"status"`
}

func NewSettlementWebhookRequestFromContext(ctx echo.Context) (*SettlementWebhookRequest, error) {
	var body SettlementWebhookRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.OrderID = strings.TrimSpace(body.OrderID)
	body.TxHash = strings.TrimSpace(body.TxHash)
	body.Status = strings.ToLower(strings.TrimSpace(body.Status))

	return &body, nil
}

func (r *SettlementWebhookRequest) Validate() error {
	if r.OrderID == "" {
		return errors.New("orderId is required")
	}
	if r.Status != "completed" && r.Status != "failed" {
		return errors.New("status must be completed or failed")
	}
	if r.Status == "completed" && r.TxHash == "" {
		return errors.New("txHash is required for completed settlements")
	}
	return nil
}

type SubmitProofRequest struct {
	CampaignID  int64  `json:"campaignId"`
	IpfsCID     string `json:"ipfsCid"`
	Description string `json:"description"`
	SubmittedBy string `json:"-"`
}

func NewSubmitProofRequestFromContext(ctx echo.Context) (*SubmitProofRequest, error) {
	var body SubmitProofRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.IpfsCID = strings.TrimSpace(body.IpfsCID)
	body.Description = strings.TrimSpace(body.Description)

	return &body, nil
}

func (r *SubmitProofRequest) Validate() error {
	if r.CampaignID <= 0 {
		return errors.New("campaignId must be > 0")
	}
	if r.IpfsCID == "" {
		return errors.New("ipfsCid is required")
	}
	return nil
}

type ListProofsRequest struct {
	CampaignID int64
	Limit      int
}

func NewListProofsRequestFromContext(ctx echo.Context) (*ListProofsRequest, error) {
	campaignID, err := strconv.ParseInt(strings.TrimSpace(ctx.Param("id")), 10, 64)
	if err != nil {
		return nil, err
	}

	req := &ListProofsRequest{
		CampaignID: campaignID,
		Limit:      50,
	}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}

func (r *ListProofsRequest) Validate() error {
	if r.CampaignID <= 0 {
		return errors.New("campaign id must be > 0")
	}
	if r.Limit <= 0 || r.Limit > 100 {
		return errors.New("limit must be between 1 and 100")
	}
	return nil
}

type ProofIpfsURLRequest struct {
	CID string `json:"cid"`
}

func NewProofIpfsURLRequestFromContext(ctx echo.Context) (*ProofIpfsURLRequest, error) {
	var body ProofIpfsURLRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.CID = strings.TrimSpace(body.CID)

	return &body, nil
}

func (r *ProofIpfsURLRequest) Validate() error {
	if r.CID == "" {
		return errors.New("cid is required")
	}
	if !ipfsCIDPattern.MatchString(r.CID) {
		return errors.New("cid must be a plain base32/base58 content identifier")
	}
	return nil
}
