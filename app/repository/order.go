package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nuoiem/ms-go-donations/app/entity"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (
			order_id, wallet_address, amount_vnd, token_amount, status,
			tx_hash, bank_code, language, gateway_transaction_no, gateway_response_code,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.OrderID,
		order.WalletAddress,
		order.AmountVND,
		order.TokenAmount,
		string(order.Status),
		nullableStringValue(order.TxHash),
		nullableStringValue(order.BankCode),
		order.Language,
		nullableStringValue(order.GatewayTransactionNo),
		nullableStringValue(order.GatewayResponseCode),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrOrderAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = uint64(id)
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders SET
			status = ?,
			tx_hash = ?,
			bank_code = ?,
			gateway_transaction_no = ?,
			gateway_response_code = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		string(order.Status),
		nullableStringValue(order.TxHash),
		nullableStringValue(order.BankCode),
		nullableStringValue(order.GatewayTransactionNo),
		nullableStringValue(order.GatewayResponseCode),
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	query := `
		SELECT id, order_id, wallet_address, amount_vnd, token_amount, status,
			tx_hash, bank_code, language, gateway_transaction_no, gateway_response_code,
			created_at, updated_at
		FROM orders
		WHERE order_id = ?
		LIMIT 1
	`

	order := &entity.Order{}
	if err := scanOrder(r.db.QueryRowContext(ctx, query, orderID), order); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) ListByWallet(ctx context.Context, walletAddress string, limit int) ([]*entity.Order, error) {
	query := `
		SELECT id, order_id, wallet_address, amount_vnd, token_amount, status,
			tx_hash, bank_code, language, gateway_transaction_no, gateway_response_code,
			created_at, updated_at
		FROM orders
		WHERE wallet_address = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, walletAddress, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *OrderRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Order, error) {
	query := `
		SELECT id, order_id, wallet_address, amount_vnd, token_amount, status,
			tx_hash, bank_code, language, gateway_transaction_no, gateway_response_code,
			created_at, updated_at
		FROM orders
		WHERE status = ? AND created_at < ?
		ORDER BY id ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, string(entity.OrderStatusPending), cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner, order *entity.Order) error {
	var (
		status               string
		txHash               sql.NullString
		bankCode             sql.NullString
		gatewayTransactionNo sql.NullString
		gatewayResponseCode  sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.OrderID,
		&order.WalletAddress,
		&order.AmountVND,
		&order.TokenAmount,
		&status,
		&txHash,
		&bankCode,
		&order.Language,
		&gatewayTransactionNo,
		&gatewayResponseCode,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	order.Status = entity.OrderStatus(status)
	order.TxHash = stringPtrFromNull(txHash)
	order.BankCode = stringPtrFromNull(bankCode)
	order.GatewayTransactionNo = stringPtrFromNull(gatewayTransactionNo)
	order.GatewayResponseCode = stringPtrFromNull(gatewayResponseCode)
	return nil
}

func collectOrders(rows *sql.Rows) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)
	for rows.Next() {
		order := &entity.Order{}
		if err := scanOrder(rows, order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
