package entity

import "time"

type User struct {
	ID uint64

	WalletAddress string
	Email         *string
	Name          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
