package mapper

import (
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/types"
)

func OrderToStatusResponse(item *entity.Order) *types.OrderStatusResponse {
	if item == nil {
		return nil
	}

	return &types.OrderStatusResponse{
		OrderID:   item.OrderID,
		Status:    string(item.Status),
		AmountVND: item.AmountVND,
		TxHash:    item.TxHash,
	}
}

func OrderToTransactionResponse(item *entity.Order) *types.TransactionResponse {
	if item == nil {
		return nil
	}

	return &types.TransactionResponse{
		OrderID:     item.OrderID,
		Status:      string(item.Status),
		AmountVND:   item.AmountVND,
		TokenAmount: item.TokenAmount,
		TxHash:      item.TxHash,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToTransactionResponses(items []*entity.Order) []*types.TransactionResponse {
	result := make([]*types.TransactionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, OrderToTransactionResponse(item))
	}
	return result
}

func UserToResponse(item *entity.User) *types.UserResponse {
	if item == nil {
		return nil
	}

	return &types.UserResponse{
		WalletAddress: item.WalletAddress,
		Email:         item.Email,
		Name:          item.Name,
	}
}

func ProofToResponse(item *entity.MealProof) *types.ProofResponse {
	if item == nil {
		return nil
	}

	return &types.ProofResponse{
		ID:          item.ID,
		CampaignID:  item.CampaignID,
		IpfsCID:     item.IpfsCID,
		Description: item.Description,
		SubmittedBy: item.SubmittedBy,
		TxHash:      item.TxHash,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ProofsToResponses(items []*entity.MealProof) []*types.ProofResponse {
	result := make([]*types.ProofResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ProofToResponse(item))
	}
	return result
}
