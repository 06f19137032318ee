package presenter

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/gateway"
	"github.com/nuoiem/ms-go-donations/app/poller"
)

type queueFetcher struct {
	snapshots []poller.Snapshot
	calls     int
}

func (f *queueFetcher) FetchStatus(_ context.Context, _ string) (*poller.Snapshot, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.snapshots) {
		idx = len(f.snapshots) - 1
	}
	s := f.snapshots[idx]
	return &s, nil
}

func instantWaiter(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func TestWatchRefusesFailedOutcome(t *testing.T) {
	params := url.Values{}
	params.Set("success", "false")
	params.Set("orderId", "ABC123")
	outcome := gateway.ParseRedirect(params, gateway.LanguageVietnamese)

	fetcher := &queueFetcher{snapshots: []poller.Snapshot{{Status: entity.OrderStatusPending}}}
	result := NewResult(outcome, "https://sepolia.etherscan.io")

	_, err := result.Watch(context.Background(), poller.New(fetcher, poller.Config{}, poller.WithWaiter(instantWaiter)))
	if !errors.Is(err, ErrNotPollable) {
		t.Fatalf("expected ErrNotPollable, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no status queries for failed outcome, got %d", fetcher.calls)
	}
}

func TestWatchRefusesUnknownOutcome(t *testing.T) {
	outcome := gateway.ParseRedirect(url.Values{}, gateway.LanguageVietnamese)
	result := NewResult(outcome, "")

	_, err := result.Watch(context.Background(), poller.New(&queueFetcher{snapshots: []poller.Snapshot{{}}}, poller.Config{}))
	if !errors.Is(err, ErrNotPollable) {
		t.Fatalf("expected ErrNotPollable, got %v", err)
	}
}

func TestWatchEndToEndScenario(t *testing.T) {
	params := url.Values{}
	params.Set("success", "true")
	params.Set("orderId", "ABC123")
	params.Set("amount", "150000")
	outcome := gateway.ParseRedirect(params, gateway.LanguageVietnamese)

	txHash := "0xdead"
	fetcher := &queueFetcher{snapshots: []poller.Snapshot{
		{Status: entity.OrderStatusPending},
		{Status: entity.OrderStatusPending},
		{Status: entity.OrderStatusCompleted, TxHash: &txHash},
	}}

	result := NewResult(outcome, "https://sepolia.etherscan.io")
	reason, err := result.Watch(context.Background(), poller.New(fetcher, poller.Config{MaxAttempts: 20}, poller.WithWaiter(instantWaiter)))
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if reason != poller.StopTerminal {
		t.Fatalf("expected StopTerminal, got %s", reason)
	}
	if fetcher.calls != 3 {
		t.Fatalf("expected 3 polls, got %d", fetcher.calls)
	}

	snapshot := result.Snapshot()
	if snapshot == nil || snapshot.Status != entity.OrderStatusCompleted {
		t.Fatalf("unexpected final snapshot: %+v", snapshot)
	}
	if snapshot.TxHash == nil || *snapshot.TxHash != "0xdead" {
		t.Fatalf("unexpected tx hash: %v", snapshot.TxHash)
	}
	if result.Polling() {
		t.Fatal("expected polling flag to be false after watch returns")
	}
	if got := result.ExplorerTxURL(); got != "https://sepolia.etherscan.io/tx/0xdead" {
		t.Fatalf("unexpected explorer url: %s", got)
	}
}

func TestSnapshotIsNilBeforePolling(t *testing.T) {
	params := url.Values{}
	params.Set("success", "true")
	params.Set("orderId", "ABC123")
	result := NewResult(gateway.ParseRedirect(params, gateway.LanguageVietnamese), "")

	if result.Snapshot() != nil {
		t.Fatal("expected nil snapshot before polling starts")
	}
	if result.Polling() {
		t.Fatal("expected polling flag false before polling starts")
	}
	if result.ExplorerTxURL() != "" {
		t.Fatal("expected empty explorer url before any snapshot")
	}
}

func TestFormattedAmount(t *testing.T) {
	params := url.Values{}
	params.Set("success", "true")
	params.Set("amount", "150000")
	result := NewResult(gateway.ParseRedirect(params, gateway.LanguageVietnamese), "")

	if got := result.FormattedAmount(); got != "150.000 VNĐ" {
		t.Fatalf("unexpected formatted amount: %q", got)
	}

	empty := NewResult(gateway.ParseRedirect(url.Values{}, gateway.LanguageVietnamese), "")
	if got := empty.FormattedAmount(); got != "" {
		t.Fatalf("expected empty formatted amount, got %q", got)
	}
}
