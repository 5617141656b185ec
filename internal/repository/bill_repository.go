package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/models"
)

// BillRepository handles write-model access to bills against the PostgreSQL
// source of truth.
type BillRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	query := `
		INSERT INTO bills (uuid, account_number, user_id, currency_id, amount_money, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		bill.UUID, bill.AccountNumber, bill.UserID, bill.CurrencyID,
		bill.AmountMoney, bill.CreatedAt, bill.UpdatedAt,
	).Scan(&bill.ID)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// FindByUUID resolves a bill regardless of ownership. Used for the recipient
// side of a transfer.
func (r *BillRepository) FindByUUID(ctx context.Context, uuid string) (*models.Bill, error) {
	query := `
		SELECT id, uuid, account_number, user_id, currency_id, amount_money, created_at, updated_at
		FROM bills
		WHERE uuid = $1
	`
	return r.scanBill(r.db.QueryRowContext(ctx, query, uuid))
}

// FindOwnedByUUID resolves a bill only if it belongs to userID. Used for the
// sender side of a transfer.
func (r *BillRepository) FindOwnedByUUID(ctx context.Context, uuid, userID string) (*models.Bill, error) {
	query := `
		SELECT id, uuid, account_number, user_id, currency_id, amount_money, created_at, updated_at
		FROM bills
		WHERE uuid = $1 AND user_id = $2
	`
	return r.scanBill(r.db.QueryRowContext(ctx, query, uuid, userID))
}

// UpdateSnapshot overwrites the denormalised amount_money display cache.
func (r *BillRepository) UpdateSnapshot(ctx context.Context, billID int64, amount decimal.Decimal) error {
	query := `
		UPDATE bills
		SET amount_money = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, billID, amount)
	if err != nil {
		return fmt.Errorf("failed to update bill snapshot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.ErrBillNotFound
	}
	return nil
}

func (r *BillRepository) scanBill(row *sql.Row) (*models.Bill, error) {
	var bill models.Bill
	err := row.Scan(
		&bill.ID, &bill.UUID, &bill.AccountNumber, &bill.UserID,
		&bill.CurrencyID, &bill.AmountMoney, &bill.CreatedAt, &bill.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}
