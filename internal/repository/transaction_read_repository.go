package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/models"
)

// partyColumns enriches one side of a transfer with the bill, its owner and
// its currency. prefix is "s" for the sender aliases, "r" for the recipient.
func partyColumns(prefix string) string {
	return fmt.Sprintf(`%[1]sb.uuid, %[1]sb.account_number,
			%[1]su.id, %[1]su.name, %[1]su.email,
			%[1]sc.uuid, %[1]sc.name, %[1]sc.base, %[1]sc.current_exchange_rate`, prefix)
}

const partyJoins = `
		JOIN bills sb ON sb.id = t.sender_bill_id
		JOIN users su ON su.id = sb.user_id
		JOIN currencies sc ON sc.id = sb.currency_id
		JOIN bills rb ON rb.id = t.recipient_bill_id
		JOIN users ru ON ru.id = rb.user_id
		JOIN currencies rc ON rc.id = rb.currency_id`

// TransactionReadRepository handles all read operations for transactions.
type TransactionReadRepository struct {
	db *sql.DB
}

func NewTransactionReadRepository(db *sql.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetPendingByUUID returns the newest pending transaction with the given
// uuid whose sender bill belongs to userID.
func (r *TransactionReadRepository) GetPendingByUUID(ctx context.Context, uuid, userID string) (*models.TransactionView, error) {
	query := `
		SELECT t.uuid, t.amount_money, t.transfer_title, t.created_at, t.updated_at,
			` + partyColumns("s") + `,
			` + partyColumns("r") + `
		FROM transactions t` + partyJoins + `
		WHERE t.uuid = $1
			AND sb.user_id = $2
			AND t.authorization_status = false
		ORDER BY t.id DESC
		LIMIT 1
	`

	var view models.TransactionView
	err := r.db.QueryRowContext(ctx, query, uuid, userID).Scan(txViewDest(&view)...)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transaction: %w", err)
	}
	return &view, nil
}

// ListConfirmedByUser returns one page of confirmed transactions where the
// user is sender or recipient, newest activity first, together with the total
// match count for pagination.
func (r *TransactionReadRepository) ListConfirmedByUser(ctx context.Context, userID string, take, skip int) ([]models.TransactionView, int, error) {
	query := `
		SELECT t.uuid, t.amount_money, t.transfer_title, t.created_at, t.updated_at,
			` + partyColumns("s") + `,
			` + partyColumns("r") + `,
			COUNT(*) OVER() AS total
		FROM transactions t` + partyJoins + `
		WHERE $1 IN (sb.user_id, rb.user_id)
			AND t.authorization_status = true
		ORDER BY t.updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, take, skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var views []models.TransactionView
	var total int
	for rows.Next() {
		var view models.TransactionView
		dest := append(txViewDest(&view), &total)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, view)
	}
	return views, total, rows.Err()
}

func txViewDest(view *models.TransactionView) []any {
	return []any{
		&view.UUID, &view.AmountMoney, &view.TransferTitle,
		&view.CreatedAt, &view.UpdatedAt,
		&view.Sender.UUID, &view.Sender.AccountNumber,
		&view.Sender.User.ID, &view.Sender.User.Name, &view.Sender.User.Email,
		&view.Sender.Currency.UUID, &view.Sender.Currency.Name,
		&view.Sender.Currency.Base, &view.Sender.Currency.CurrentExchangeRate,
		&view.Recipient.UUID, &view.Recipient.AccountNumber,
		&view.Recipient.User.ID, &view.Recipient.User.Name, &view.Recipient.User.Email,
		&view.Recipient.Currency.UUID, &view.Recipient.Currency.Name,
		&view.Recipient.Currency.Base, &view.Recipient.Currency.CurrentExchangeRate,
	}
}
