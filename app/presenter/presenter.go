package presenter

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/leekchan/accounting"

	"github.com/nuoiem/ms-go-donations/app/gateway"
	"github.com/nuoiem/ms-go-donations/app/poller"
)

var ErrNotPollable = errors.New("outcome is not eligible for status polling")

var vndFormatter = accounting.Accounting{
	Symbol:    "VNĐ",
	Precision: 0,
	Thousand:  ".",
	Format:    "%v %s",
}

// Result is the state handed to a display layer: the immutable redirect
// outcome, the latest settlement snapshot, and whether polling is in
// progress. Only the polling loop mutates the snapshot, and it does so by
// wholesale replacement; readers never observe a torn value.
type Result struct {
	mu sync.RWMutex

	outcome      *gateway.Outcome
	snapshot     *poller.Snapshot
	polling      bool
	explorerBase string
}

func NewResult(outcome *gateway.Outcome, explorerBase string) *Result {
	return &Result{
		outcome:      outcome,
		explorerBase: strings.TrimRight(explorerBase, "/"),
	}
}

func (r *Result) Outcome() *gateway.Outcome {
	return r.outcome
}

// Pollable reports the polling precondition: a gateway-level success with a
// known order id. Failed and unknown outcomes never start the poller.
func (r *Result) Pollable() bool {
	return r.outcome != nil && r.outcome.Success && r.outcome.OrderID != nil
}

func (r *Result) Snapshot() *poller.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.snapshot == nil {
		return nil
	}
	copied := *r.snapshot
	return &copied
}

func (r *Result) Polling() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.polling
}

// Watch drives the poller against this result's order until it stops, keeping
// the snapshot and in-progress flag current. It blocks; cancel via ctx.
func (r *Result) Watch(ctx context.Context, p *poller.Poller) (poller.StopReason, error) {
	if !r.Pollable() {
		return poller.StopCancelled, ErrNotPollable
	}

	r.setPolling(true)
	defer r.setPolling(false)

	return p.Run(ctx, *r.outcome.OrderID, r.replaceSnapshot)
}

// ExplorerTxURL returns the outbound explorer link for the settled
// transaction, or "" while no hash is known.
func (r *Result) ExplorerTxURL() string {
	snapshot := r.Snapshot()
	if snapshot == nil || snapshot.TxHash == nil || r.explorerBase == "" {
		return ""
	}
	return r.explorerBase + "/tx/" + *snapshot.TxHash
}

// FormattedAmount renders the outcome amount in the vi-VN thousands format,
// or "" when the amount is unknown.
func (r *Result) FormattedAmount() string {
	if r.outcome == nil || r.outcome.Amount == nil {
		return ""
	}
	return vndFormatter.FormatMoney(*r.outcome.Amount)
}

func (r *Result) replaceSnapshot(s poller.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = &s
}

func (r *Result) setPolling(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.polling = v
}
