package service

import (
	"context"
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
)

// RunExpirePendingBatch marks pending orders older than the configured
// timeout as expired. It processes at most one batch per call and keeps going
// past individual failures, returning the first error encountered.
func (s *DonationService) RunExpirePendingBatch(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.Add(-s.ordersCfg.PendingTimeout)
	items, err := s.orderRepo.ListPendingOlderThan(ctx, cutoff, s.batchSize())
	if err != nil {
		return err
	}

	var firstErr error
	for _, order := range items {
		if order == nil || order.Status != entity.OrderStatusPending {
			continue
		}

		oldStatus := order.Status
		order.Status = entity.OrderStatusExpired
		order.UpdatedAt = now

		if err := s.orderRepo.Update(ctx, order); err != nil {
			firstErr = keepFirstErr(firstErr, err)
			continue
		}

		_ = s.eventRepo.Create(ctx, &entity.OrderEvent{
			OrderID:   order.ID,
			EventType: "order_expired",
			OldStatus: &oldStatus,
			NewStatus: order.Status,
			CreatedAt: now,
		})
	}

	return firstErr
}

func keepFirstErr(current, candidate error) error {
	if current != nil {
		return current
	}
	return candidate
}
