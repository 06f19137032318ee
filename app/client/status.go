package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/poller"
)

var (
	ErrBaseURLRequired = errors.New("status client base url is required")
	ErrOrderNotFound   = errors.New("order was not found")
)

type StatusClientConfig struct {
	BaseURL     string
	BearerToken string
	HTTPTimeout time.Duration
}

// StatusClient reads settlement state over the order status HTTP endpoint.
// It satisfies the poller's fetcher contract.
type StatusClient struct {
	cfg    StatusClientConfig
	client *http.Client
}

func NewStatusClient(cfg StatusClientConfig) (*StatusClient, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &StatusClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (c *StatusClient) FetchStatus(ctx context.Context, orderID string) (*poller.Snapshot, error) {
	endpoint := c.cfg.BaseURL + "/payment/order/" + url.PathEscape(orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.BearerToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrOrderNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("order status request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			OrderID   string  `json:"orderId"`
			Status    string  `json:"status"`
			AmountVND int64   `json:"amountVND"`
			TxHash    *string `json:"txHash"`
		} `json:"data"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		if strings.TrimSpace(payload.Error) == "" {
			return nil, errors.New("order status request was rejected")
		}
		return nil, errors.New(payload.Error)
	}

	status := entity.OrderStatus(strings.TrimSpace(payload.Data.Status))
	if !status.Valid() {
		return nil, fmt.Errorf("unexpected order status %q", payload.Data.Status)
	}

	snapshot := &poller.Snapshot{Status: status}
	if payload.Data.TxHash != nil && strings.TrimSpace(*payload.Data.TxHash) != "" {
		hash := strings.TrimSpace(*payload.Data.TxHash)
		snapshot.TxHash = &hash
	}
	return snapshot, nil
}
