package entity

import "time"

type MealProof struct {
	ID uint64

	CampaignID  int64
	IpfsCID     string
	Description *string

	SubmittedBy string
	TxHash      *string

	CreatedAt time.Time
}
