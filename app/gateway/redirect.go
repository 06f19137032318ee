package gateway

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Source string

const (
	SourceBackend Source = "backend"
	SourceGateway Source = "gateway"
	SourceUnknown Source = "unknown"
)

// GatewayDetails carries the fields only present when the redirect came
// straight from VNPay rather than through the backend return handler.
type GatewayDetails struct {
	BankCode      string
	OrderInfo     string
	PayDate       *string
	TransactionNo string
	ResponseCode  string
}

// Outcome is the normalized result of one inbound payment redirect. It is
// built once by ParseRedirect and never mutated afterwards. Amount is in full
// VND units regardless of the source shape.
type Outcome struct {
	Success bool
	OrderID *string
	Amount  *int64
	Message *string
	Source  Source
	Gateway *GatewayDetails
}

// ParseRedirect interprets an inbound redirect query into an Outcome. Two
// shapes are recognized, in priority order: the backend shape (identified by
// a `success` parameter) and the raw gateway shape (identified by
// `vnp_ResponseCode`). Anything else resolves to SourceUnknown with a
// localized "not found" message. The function is pure and never panics;
// malformed individual fields resolve to nil.
func ParseRedirect(params url.Values, lang Language) *Outcome {
	if params.Has("success") {
		return parseBackendShape(params)
	}
	if params.Has("vnp_ResponseCode") {
		return parseGatewayShape(params, lang)
	}

	message := MessageNoPaymentInfo(lang)
	return &Outcome{
		Success: false,
		Message: &message,
		Source:  SourceUnknown,
	}
}

func parseBackendShape(params url.Values) *Outcome {
	outcome := &Outcome{
		Success: params.Get("success") == "true",
		OrderID: optionalParam(params, "orderId"),
		Message: optionalParam(params, "message"),
		Source:  SourceBackend,
	}

	if raw := params.Get("amount"); raw != "" {
		if amount, err := strconv.ParseInt(raw, 10, 64); err == nil {
			outcome.Amount = &amount
		}
	}

	return outcome
}

func parseGatewayShape(params url.Values, lang Language) *Outcome {
	responseCode := params.Get("vnp_ResponseCode")
	message := TranslateResponseCode(responseCode, lang)

	outcome := &Outcome{
		Success: responseCode == "00" && params.Get("vnp_TransactionStatus") == "00",
		OrderID: optionalParam(params, "vnp_TxnRef"),
		Message: &message,
		Source:  SourceGateway,
		Gateway: &GatewayDetails{
			BankCode:      params.Get("vnp_BankCode"),
			OrderInfo:     decodeOrderInfo(params.Get("vnp_OrderInfo")),
			PayDate:       formatPayDate(params.Get("vnp_PayDate")),
			TransactionNo: params.Get("vnp_TransactionNo"),
			ResponseCode:  responseCode,
		},
	}

	if raw := params.Get("vnp_Amount"); raw != "" {
		if scaled, err := strconv.ParseInt(raw, 10, 64); err == nil {
			// Gateway reports the amount scaled by 100. Fractional VND is
			// meaningless, so integer division truncates any remainder.
			amount := scaled / 100
			outcome.Amount = &amount
		}
	}

	return outcome
}

// formatPayDate converts the gateway's yyyyMMddHHmmss timestamp to the
// dd/MM/yyyy HH:mm:ss display form. Malformed input yields nil.
func formatPayDate(raw string) *string {
	if len(raw) != 14 {
		return nil
	}
	parsed, err := time.Parse("20060102150405", raw)
	if err != nil {
		return nil
	}
	formatted := parsed.Format("02/01/2006 15:04:05")
	return &formatted
}

// decodeOrderInfo reverses VNPay's order-info encoding: `+` stands for a
// space, the rest is percent-encoded. Undecodable input is kept as-is after
// the plus substitution.
func decodeOrderInfo(raw string) string {
	replaced := strings.ReplaceAll(raw, "+", " ")
	decoded, err := url.QueryUnescape(replaced)
	if err != nil {
		return replaced
	}
	return decoded
}

func optionalParam(params url.Values, key string) *string {
	value := params.Get(key)
	if value == "" {
		return nil
	}
	return &value
}
