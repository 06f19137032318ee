package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
)

type scriptedFetcher struct {
	responses []fetchResponse
	calls     int
}

type fetchResponse struct {
	snapshot *Snapshot
	err      error
}

func (f *scriptedFetcher) FetchStatus(_ context.Context, _ string) (*Snapshot, error) {
	idx := f.calls
	f.calls++
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	r := f.responses[idx]
	return r.snapshot, r.err
}

func instantWaiter(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func snapshotOf(status entity.OrderStatus, txHash string) *Snapshot {
	s := &Snapshot{Status: status}
	if txHash != "" {
		s.TxHash = &txHash
	}
	return s
}

func TestRunRequiresOrderID(t *testing.T) {
	p := New(&scriptedFetcher{}, Config{}, WithWaiter(instantWaiter))
	_, err := p.Run(context.Background(), "  ", nil)
	if !errors.Is(err, ErrOrderIDRequired) {
		t.Fatalf("expected ErrOrderIDRequired, got %v", err)
	}
}

func TestRunStopsImmediatelyOnTerminalStatus(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{snapshot: snapshotOf(entity.OrderStatusPending, "")},
		{snapshot: snapshotOf(entity.OrderStatusPending, "")},
		{snapshot: snapshotOf(entity.OrderStatusCompleted, "0xdead")},
	}}
	p := New(fetcher, Config{MaxAttempts: 20}, WithWaiter(instantWaiter))

	var snapshots []Snapshot
	reason, err := p.Run(context.Background(), "NE-42", func(s Snapshot) {
		snapshots = append(snapshots, s)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if reason != StopTerminal {
		t.Fatalf("expected StopTerminal, got %s", reason)
	}
	if fetcher.calls != 3 {
		t.Fatalf("expected exactly 3 queries, got %d", fetcher.calls)
	}
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}
	last := snapshots[len(snapshots)-1]
	if last.Status != entity.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", last.Status)
	}
	if last.TxHash == nil || *last.TxHash != "0xdead" {
		t.Fatalf("unexpected tx hash: %v", last.TxHash)
	}
}

func TestRunStopsOnFailedAndExpired(t *testing.T) {
	for _, status := range []entity.OrderStatus{entity.OrderStatusFailed, entity.OrderStatusExpired} {
		fetcher := &scriptedFetcher{responses: []fetchResponse{
			{snapshot: snapshotOf(status, "")},
		}}
		p := New(fetcher, Config{MaxAttempts: 20}, WithWaiter(instantWaiter))

		reason, err := p.Run(context.Background(), "NE-42", nil)
		if err != nil {
			t.Fatalf("status %s: run failed: %v", status, err)
		}
		if reason != StopTerminal {
			t.Fatalf("status %s: expected StopTerminal, got %s", status, reason)
		}
		if fetcher.calls != 1 {
			t.Fatalf("status %s: expected 1 query, got %d", status, fetcher.calls)
		}
	}
}

func TestRunExhaustsBudgetOnNonTerminalStatuses(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{snapshot: snapshotOf(entity.OrderStatusProcessing, "")},
	}}
	p := New(fetcher, Config{MaxAttempts: 20}, WithWaiter(instantWaiter))

	var last Snapshot
	reason, err := p.Run(context.Background(), "NE-42", func(s Snapshot) { last = s })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if reason != StopBudget {
		t.Fatalf("expected StopBudget, got %s", reason)
	}
	if fetcher.calls != 20 {
		t.Fatalf("expected 20 queries, got %d", fetcher.calls)
	}
	if last.Status != entity.OrderStatusProcessing {
		t.Fatalf("expected last snapshot retained, got %s", last.Status)
	}
}

func TestRunFetchErrorsCountTowardBudgetWithoutStopping(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{err: errors.New("network unreachable")},
		{err: errors.New("status 500")},
		{snapshot: snapshotOf(entity.OrderStatusCompleted, "0xbeef")},
	}}
	p := New(fetcher, Config{MaxAttempts: 5}, WithWaiter(instantWaiter))

	var snapshots []Snapshot
	reason, err := p.Run(context.Background(), "NE-42", func(s Snapshot) {
		snapshots = append(snapshots, s)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if reason != StopTerminal {
		t.Fatalf("expected StopTerminal, got %s", reason)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected single snapshot from successful attempt, got %d", len(snapshots))
	}
	if fetcher.calls != 3 {
		t.Fatalf("expected 3 queries, got %d", fetcher.calls)
	}
}

func TestRunCancellationPublishesNothingFurther(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{snapshot: snapshotOf(entity.OrderStatusPending, "")},
	}}
	calls := 0
	p := New(fetcher, Config{MaxAttempts: 20}, WithWaiter(func(ctx context.Context, _ time.Duration) error {
		calls++
		if calls == 2 {
			// Cancelled between attempt 2 and attempt 3.
			cancel()
		}
		return ctx.Err()
	}))

	var snapshots []Snapshot
	reason, err := p.Run(ctx, "NE-42", func(s Snapshot) {
		snapshots = append(snapshots, s)
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if reason != StopCancelled {
		t.Fatalf("expected StopCancelled, got %s", reason)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected no snapshot after cancellation, got %d", len(snapshots))
	}
	if fetcher.calls != 2 {
		t.Fatalf("expected no query after cancellation, got %d", fetcher.calls)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{snapshot: snapshotOf(entity.OrderStatusPending, "")},
	}}
	p := New(fetcher, Config{MaxAttempts: 20}, WithWaiter(instantWaiter))

	reason, err := p.Run(ctx, "NE-42", func(Snapshot) {
		t.Fatal("no snapshot expected for cancelled context")
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if reason != StopCancelled {
		t.Fatalf("expected StopCancelled, got %s", reason)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no queries, got %d", fetcher.calls)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	p := New(&scriptedFetcher{}, Config{})
	if p.cfg.Interval != DefaultInterval {
		t.Fatalf("expected default interval, got %v", p.cfg.Interval)
	}
	if p.cfg.MaxAttempts != DefaultMaxAttempts {
		t.Fatalf("expected default max attempts, got %d", p.cfg.MaxAttempts)
	}
}
