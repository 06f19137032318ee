package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusExpired    OrderStatus = "expired"
)

// Terminal reports whether no further status change is expected.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusFailed, OrderStatusExpired:
		return true
	default:
		return false
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusFailed, OrderStatusExpired:
		return true
	default:
		return false
	}
}

type Order struct {
	ID uint64

	OrderID       string
	WalletAddress string

	AmountVND   int64
	TokenAmount string

	Status OrderStatus
	TxHash *string

	BankCode *string
	Language string

	GatewayTransactionNo *string
	GatewayResponseCode  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
