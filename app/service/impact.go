package service

import (
	"context"
	"strings"
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
	"github.com/nuoiem/ms-go-donations/app/types"
)

type mealProofRepository interface {
	Create(ctx context.Context, proof *entity.MealProof) error
	List(ctx context.Context, campaignID int64, limit int) ([]*entity.MealProof, error)
}

type ImpactService struct {
	proofRepo mealProofRepository
}

func NewImpactService(proofRepo mealProofRepository) *ImpactService {
	return &ImpactService{proofRepo: proofRepo}
}

func (s *ImpactService) SubmitProof(ctx context.Context, req *types.SubmitProofRequest) (*entity.MealProof, error) {
	submittedBy := strings.TrimSpace(req.SubmittedBy)
	if submittedBy == "" {
		return nil, ErrInvalidRequest
	}

	proof := &entity.MealProof{
		CampaignID:  req.CampaignID,
		IpfsCID:     req.IpfsCID,
		Description: normalizeOptionalString(req.Description),
		SubmittedBy: submittedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.proofRepo.Create(ctx, proof); err != nil {
		return nil, err
	}
	return proof, nil
}

func (s *ImpactService) ListProofs(ctx context.Context, req *types.ListProofsRequest) ([]*entity.MealProof, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.proofRepo.List(ctx, req.CampaignID, limit)
}

// The first gateway is the primary; the rest are fallbacks for clients that
// cannot reach it.
var proofGatewayBases = []string{
	"https://ipfs.io/ipfs/",
	"https://cloudflare-ipfs.com/ipfs/",
	"https://gateway.pinata.cloud/ipfs/",
}

// ProofGatewayURLs expands an IPFS content identifier into fetchable gateway
// URLs. Pure templating; the CID is validated by the request layer.
func (s *ImpactService) ProofGatewayURLs(cid string) *types.ProofIpfsURLResponse {
	urls := make([]string, 0, len(proofGatewayBases))
	for _, base := range proofGatewayBases {
		urls = append(urls, base+cid)
	}
	return &types.ProofIpfsURLResponse{
		CID:         cid,
		URL:         urls[0],
		GatewayURLs: urls,
	}
}
