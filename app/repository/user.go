package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nuoiem/ms-go-donations/app/entity"
)

var ErrUserAlreadyExists = errors.New("user already exists")

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (wallet_address, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.WalletAddress,
		nullableStringValue(user.Email),
		nullableStringValue(user.Name),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrUserAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

func (r *UserRepository) FindByWalletAddress(ctx context.Context, walletAddress string) (*entity.User, error) {
	query := `
		SELECT id, wallet_address, email, name, created_at, updated_at
		FROM users
		WHERE wallet_address = ?
		LIMIT 1
	`

	var (
		user  entity.User
		email sql.NullString
		name  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, walletAddress).Scan(
		&user.ID,
		&user.WalletAddress,
		&email,
		&name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	user.Email = stringPtrFromNull(email)
	user.Name = stringPtrFromNull(name)
	return &user, nil
}
