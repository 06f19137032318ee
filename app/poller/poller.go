package poller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/factory"
)

const (
	DefaultInterval    = 3 * time.Second
	DefaultMaxAttempts = 20
)

var ErrOrderIDRequired = errors.New("order id is required")

// Snapshot is one observation of an order's settlement state. TxHash may stay
// nil even after completion when the backend has not exposed it yet.
type Snapshot struct {
	Status entity.OrderStatus
	TxHash *string
}

// StatusFetcher performs a single order-status query.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, orderID string) (*Snapshot, error)
}

// StopReason tells a caller why polling ended; budget exhaustion is not an
// error but must stay distinguishable from reaching a terminal status.
type StopReason int

const (
	StopTerminal StopReason = iota
	StopBudget
	StopCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopTerminal:
		return "terminal"
	case StopBudget:
		return "budget"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// Poller repeatedly queries order status at a fixed interval until a terminal
// status, attempt-budget exhaustion, or cancellation. The wait step is
// injectable so tests run without real sleeps.
type Poller struct {
	fetcher StatusFetcher
	cfg     Config
	wait    func(ctx context.Context, d time.Duration) error
	logger  logrus.FieldLogger
}

type Option func(*Poller)

// WithWaiter replaces the interval wait. The waiter must return ctx.Err()
// when the context is cancelled before the duration elapses.
func WithWaiter(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Poller) {
		p.wait = wait
	}
}

func New(fetcher StatusFetcher, cfg Config, opts ...Option) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	p := &Poller{
		fetcher: fetcher,
		cfg:     cfg,
		wait:    waitTimer,
		logger:  factory.NewModuleLogger("order-poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until a stop condition and reports each snapshot through publish,
// in issuance order from a single goroutine. A fetch error counts against the
// attempt budget but does not stop the loop. After cancellation no further
// snapshot is published.
func (p *Poller) Run(ctx context.Context, orderID string, publish func(Snapshot)) (StopReason, error) {
	if strings.TrimSpace(orderID) == "" {
		return StopCancelled, ErrOrderIDRequired
	}

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return StopCancelled, nil
		}

		snapshot, err := p.fetcher.FetchStatus(ctx, orderID)
		if err != nil {
			if ctx.Err() != nil {
				return StopCancelled, nil
			}
			p.logger.WithError(err).WithField("order_id", orderID).WithField("attempt", attempt).Warn("Order status query failed")
		} else if snapshot != nil {
			if ctx.Err() != nil {
				return StopCancelled, nil
			}
			if publish != nil {
				publish(*snapshot)
			}
			if snapshot.Status.Terminal() {
				return StopTerminal, nil
			}
		}

		if attempt == p.cfg.MaxAttempts {
			break
		}
		if err := p.wait(ctx, p.cfg.Interval); err != nil {
			return StopCancelled, nil
		}
	}

	return StopBudget, nil
}

func waitTimer(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
