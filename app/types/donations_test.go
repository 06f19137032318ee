package types

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewCreatePaymentRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("POST", "/payment/create", bytes.NewBufferString(`{"walletAddress":" 0x1111111111111111111111111111111111111111 ","amountVND":150000,"language":"VN"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.WalletAddress != "" {
		t.Fatalf("expected wallet address in body to be ignored, got %q", parsed.WalletAddress)
	}
	if parsed.Language != "vn" {
		t.Fatalf("expected lower-cased language, got %q", parsed.Language)
	}

	parsed.WalletAddress = "0x1111111111111111111111111111111111111111"
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestCreatePaymentValidate(t *testing.T) {
	req := &CreatePaymentRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected walletAddress validation error")
	}

	req = &CreatePaymentRequest{WalletAddress: "not-an-address", AmountVND: 1000}
	if err := req.Validate(); err == nil {
		t.Fatal("expected address format validation error")
	}

	req = &CreatePaymentRequest{WalletAddress: "0x1111111111111111111111111111111111111111"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected amount validation error")
	}

	req = &CreatePaymentRequest{WalletAddress: "0x1111111111111111111111111111111111111111", AmountVND: 1000, Language: "fr"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected language validation error")
	}
}

func TestNewGetOrderStatusRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/payment/order/NE-42?walletAddress=0x9999999999999999999999999999999999999999", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("orderId")
	ctx.SetParamValues(" NE-42 ")

	parsed, err := NewGetOrderStatusRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.OrderID != "NE-42" {
		t.Fatalf("expected trimmed order id, got %q", parsed.OrderID)
	}
	if parsed.WalletAddress != "" {
		t.Fatalf("expected wallet address in query to be ignored, got %q", parsed.WalletAddress)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	empty := &GetOrderStatusRequest{}
	if err := empty.Validate(); err == nil {
		t.Fatal("expected orderId validation error")
	}
}

func TestNewListTransactionsRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/payment/transactions?limit=20&walletAddress=0x1111111111111111111111111111111111111111", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewListTransactionsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.Limit != 20 {
		t.Fatalf("expected limit 20, got %d", parsed.Limit)
	}
	if parsed.WalletAddress != "" {
		t.Fatalf("expected wallet address in query to be ignored, got %q", parsed.WalletAddress)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestListTransactionsValidateBounds(t *testing.T) {
	req := &ListTransactionsRequest{Limit: 101}
	if err := req.Validate(); err == nil {
		t.Fatal("expected limit upper bound validation error")
	}

	req = &ListTransactionsRequest{Limit: 0}
	if err := req.Validate(); err == nil {
		t.Fatal("expected limit lower bound validation error")
	}
}

func TestSettlementWebhookValidate(t *testing.T) {
	req := &SettlementWebhookRequest{OrderID: "NE-42", Status: "completed"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected txHash validation error for completed settlement")
	}

	req.TxHash = "0xdead"
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req = &SettlementWebhookRequest{OrderID: "NE-42", Status: "failed"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected failed settlement without hash to validate, got %v", err)
	}

	req = &SettlementWebhookRequest{OrderID: "NE-42", Status: "pending"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected status validation error")
	}
}

func TestSubmitProofValidate(t *testing.T) {
	req := &SubmitProofRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected campaignId validation error")
	}

	req = &SubmitProofRequest{CampaignID: 7}
	if err := req.Validate(); err == nil {
		t.Fatal("expected ipfsCid validation error")
	}

	req = &SubmitProofRequest{CampaignID: 7, IpfsCID: "bafybeib"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestNewListProofsRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/v1/impact/campaign/7/proofs?limit=10", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("7")

	parsed, err := NewListProofsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.CampaignID != 7 {
		t.Fatalf("expected campaign id 7, got %d", parsed.CampaignID)
	}
	if parsed.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", parsed.Limit)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	ctx = e.NewContext(httptest.NewRequest("GET", "/v1/impact/campaign/abc/proofs", nil), httptest.NewRecorder())
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")
	if _, err := NewListProofsRequestFromContext(ctx); err == nil {
		t.Fatal("expected error for non-numeric campaign id")
	}
}

func TestListProofsValidateBounds(t *testing.T) {
	req := &ListProofsRequest{CampaignID: 0, Limit: 10}
	if err := req.Validate(); err == nil {
		t.Fatal("expected campaign id validation error")
	}

	req = &ListProofsRequest{CampaignID: 7, Limit: 101}
	if err := req.Validate(); err == nil {
		t.Fatal("expected limit upper bound validation error")
	}
}

func TestProofIpfsURLValidate(t *testing.T) {
	req := &ProofIpfsURLRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected cid validation error")
	}

	req = &ProofIpfsURLRequest{CID: "../../etc/passwd"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected cid format validation error")
	}

	req = &ProofIpfsURLRequest{CID: "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
