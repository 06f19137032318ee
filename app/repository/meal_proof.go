package repository

import (
	"context"
	"database/sql"

	"github.com/nuoiem/ms-go-donations/app/entity"
)

type MealProofRepository struct {
	db DBTX
}

func NewMealProofRepository(db DBTX) *MealProofRepository {
	return &MealProofRepository{db: db}
}

func (r *MealProofRepository) Create(ctx context.Context, proof *entity.MealProof) error {
	query := `
		INSERT INTO meal_proofs (campaign_id, ipfs_cid, description, submitted_by, tx_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		proof.CampaignID,
		proof.IpfsCID,
		nullableStringValue(proof.Description),
		proof.SubmittedBy,
		nullableStringValue(proof.TxHash),
		proof.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	proof.ID = uint64(id)
	return nil
}

func (r *MealProofRepository) List(ctx context.Context, campaignID int64, limit int) ([]*entity.MealProof, error) {
	query := `
		SELECT id, campaign_id, ipfs_cid, description, submitted_by, tx_hash, created_at
		FROM meal_proofs
	`
	args := make([]interface{}, 0, 2)

	if campaignID > 0 {
		query += " WHERE campaign_id = ?"
		args = append(args, campaignID)
	}

	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proofs := make([]*entity.MealProof, 0)
	for rows.Next() {
		var (
			proof       entity.MealProof
			description sql.NullString
			txHash      sql.NullString
		)
		err := rows.Scan(
			&proof.ID,
			&proof.CampaignID,
			&proof.IpfsCID,
			&description,
			&proof.SubmittedBy,
			&txHash,
			&proof.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		proof.Description = stringPtrFromNull(description)
		proof.TxHash = stringPtrFromNull(txHash)
		proofs = append(proofs, &proof)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return proofs, nil
}
