package entity

import "time"

type OrderEvent struct {
	ID uint64

	OrderID uint64

	EventType string

	OldStatus *OrderStatus
	NewStatus OrderStatus

	DetailJSON *string

	CreatedAt time.Time
}
