package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	Version    string
}

// Client builds signed VNPay payment URLs and verifies return redirects. The
// signature scheme is HMAC-SHA512 over the sorted, URL-encoded parameter
// string, excluding vnp_SecureHash itself.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = "2.1.0"
	}
	return &Client{cfg: cfg}
}

type PaymentInput struct {
	OrderID   string
	AmountVND int64
	OrderInfo string
	BankCode  string
	Locale    Language
	IPAddr    string
	CreatedAt time.Time
}

// BuildPaymentURL assembles the hosted-payment redirect URL for one order.
func (c *Client) BuildPaymentURL(input PaymentInput) (string, error) {
	if strings.TrimSpace(c.cfg.TmnCode) == "" {
		return "", errors.New("vnpay tmn code is not configured")
	}
	if strings.TrimSpace(c.cfg.HashSecret) == "" {
		return "", errors.New("vnpay hash secret is not configured")
	}
	if strings.TrimSpace(input.OrderID) == "" {
		return "", errors.New("order id is required")
	}
	if input.AmountVND <= 0 {
		return "", errors.New("amount must be > 0")
	}

	locale := input.Locale
	if locale == "" {
		locale = LanguageVietnamese
	}
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	orderInfo := strings.TrimSpace(input.OrderInfo)
	if orderInfo == "" {
		orderInfo = "Nap tien don hang " + input.OrderID
	}
	ipAddr := strings.TrimSpace(input.IPAddr)
	if ipAddr == "" {
		ipAddr = "127.0.0.1"
	}

	params := url.Values{}
	params.Set("vnp_Version", c.cfg.Version)
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", c.cfg.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(input.AmountVND*100, 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", input.OrderID)
	params.Set("vnp_OrderInfo", orderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", string(locale))
	params.Set("vnp_ReturnUrl", c.cfg.ReturnURL)
	params.Set("vnp_IpAddr", ipAddr)
	params.Set("vnp_CreateDate", createdAt.Format("20060102150405"))
	if bankCode := strings.TrimSpace(input.BankCode); bankCode != "" {
		params.Set("vnp_BankCode", bankCode)
	}

	signed := signParams(params)
	return c.cfg.BaseURL + "?" + signed + "&vnp_SecureHash=" + secureHash(signed, c.cfg.HashSecret), nil
}

var ErrInvalidSignature = errors.New("invalid vnpay signature")

// VerifyReturn checks the vnp_SecureHash on an inbound return redirect. Only
// vnp_-prefixed parameters participate in the signature; vnp_SecureHash and
// vnp_SecureHashType are excluded.
func (c *Client) VerifyReturn(params url.Values) error {
	received := strings.TrimSpace(params.Get("vnp_SecureHash"))
	if received == "" {
		return ErrInvalidSignature
	}

	filtered := url.Values{}
	for key, values := range params {
		if !strings.HasPrefix(key, "vnp_") || key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		for _, value := range values {
			filtered.Add(key, value)
		}
	}

	expected := secureHash(signParams(filtered), c.cfg.HashSecret)
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// signParams produces the canonical hash-data string: keys sorted, values
// URL-encoded the way the gateway encodes them.
func signParams(params url.Values) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(key)))
	}
	return b.String()
}

func secureHash(data, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	_, _ = mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
