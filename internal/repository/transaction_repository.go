package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/utils"
)

const uniqueViolation = "23505"

// createAttempts bounds the retry loop on authorization key collisions. The
// key space is small, so the schema carries a partial unique index on
// authorization_key for pending rows and creation retries with a fresh key.
const createAttempts = 3

// computedBalanceQuery is the authoritative balance of bill $1: the signed
// sum over confirmed transactions touching the bill, each amount converted
// from the sender's currency into the bill's currency, truncated to 2 decimal
// places. No matching transactions yields 0.00.
const computedBalanceQuery = `
	SELECT COALESCE(TRUNC(SUM(
		CASE WHEN t.recipient_bill_id = $1 THEN
			CASE WHEN sc.id = rc.id THEN 1
				WHEN rc.base THEN sc.current_exchange_rate
				ELSE sc.current_exchange_rate * rc.current_exchange_rate
			END
		ELSE -1
		END * t.amount_money
	), 2), 0.00)
	FROM transactions t
	JOIN bills sb ON sb.id = t.sender_bill_id
	JOIN bills rb ON rb.id = t.recipient_bill_id
	JOIN currencies sc ON sc.id = sb.currency_id
	JOIN currencies rc ON rc.id = rb.currency_id
	WHERE $1 IN (t.sender_bill_id, t.recipient_bill_id)
		AND t.authorization_status = true
`

// findPendingForConfirmQuery locks the matched transaction and its sender
// bill row so that concurrent confirmations against the same bill serialize
// on the balance check.
const findPendingForConfirmQuery = `
	SELECT t.id, t.uuid, t.sender_bill_id, t.recipient_bill_id, t.amount_money,
		t.transfer_title, t.authorization_key, t.authorization_status,
		t.created_at, t.updated_at, sb.uuid, rb.uuid
	FROM transactions t
	JOIN bills sb ON sb.id = t.sender_bill_id
	JOIN bills rb ON rb.id = t.recipient_bill_id
	WHERE t.authorization_key = $1
		AND sb.user_id = $2
		AND t.authorization_status = false
	ORDER BY t.id DESC
	LIMIT 1
	FOR UPDATE OF t, sb
`

const confirmUpdateQuery = `
	UPDATE transactions
	SET authorization_status = true, updated_at = NOW()
	WHERE id = $1 AND authorization_status = false
`

// ConfirmedTransfer is the outcome of a successful confirmation, carrying the
// bill uuids needed to announce the event.
type ConfirmedTransfer struct {
	models.Transaction
	SenderBillUUID    string
	RecipientBillUUID string
}

// TransactionWriteRepository handles all state-mutating operations for
// transactions against the PostgreSQL write store.
type TransactionWriteRepository struct {
	db *sql.DB
}

func NewTransactionWriteRepository(db *sql.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Create persists a pending transaction. On an authorization key collision it
// regenerates the key and retries; any other failure wraps the driver error
// into ErrCreateFailed.
func (r *TransactionWriteRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (uuid, sender_bill_id, recipient_bill_id, amount_money,
			transfer_title, authorization_key, authorization_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
		RETURNING id
	`
	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = r.db.QueryRowContext(ctx, query,
			transaction.UUID, transaction.SenderBillID, transaction.RecipientBillID,
			transaction.AmountMoney, transaction.TransferTitle,
			transaction.AuthorizationKey, transaction.CreatedAt, transaction.UpdatedAt,
		).Scan(&transaction.ID)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			break
		}
		transaction.AuthorizationKey = utils.GenerateAuthorizationKey()
	}
	return fmt.Errorf("%w: %v", apperr.ErrCreateFailed, err)
}

// ComputedBalance evaluates the authoritative balance aggregate for a bill.
func (r *TransactionWriteRepository) ComputedBalance(ctx context.Context, billID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.db.QueryRowContext(ctx, computedBalanceQuery, billID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

// ConfirmByAuthorizationKey confirms the pending transaction matching key,
// scoped to sender bills owned by userID. The lookup, the authoritative
// balance check and the status flip all run inside one SQL transaction with
// the sender bill row locked, so an overdraw cannot slip between the check
// and the update.
func (r *TransactionWriteRepository) ConfirmByAuthorizationKey(ctx context.Context, key, userID string) (*ConfirmedTransfer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var transfer ConfirmedTransfer
	err = tx.QueryRowContext(ctx, findPendingForConfirmQuery, key, userID).Scan(
		&transfer.ID, &transfer.UUID, &transfer.SenderBillID, &transfer.RecipientBillID,
		&transfer.AmountMoney, &transfer.TransferTitle, &transfer.AuthorizationKey,
		&transfer.AuthorizationStatus, &transfer.CreatedAt, &transfer.UpdatedAt,
		&transfer.SenderBillUUID, &transfer.RecipientBillUUID,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending transaction: %w", err)
	}

	var balance decimal.Decimal
	if err := tx.QueryRowContext(ctx, computedBalanceQuery, transfer.SenderBillID).Scan(&balance); err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	if balance.LessThan(transfer.AmountMoney) {
		return nil, apperr.ErrAmountNotEnough
	}

	result, err := tx.ExecContext(ctx, confirmUpdateQuery, transfer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		// The preceding locked lookup guaranteed a pending row.
		return nil, apperr.ErrTransactionNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit confirmation: %w", err)
	}

	transfer.AuthorizationStatus = true
	return &transfer, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
