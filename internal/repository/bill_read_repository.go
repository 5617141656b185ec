package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/models"
	sharedredis "github.com/harborbank/banking/internal/redis"
)

const billViewKeyPrefix = "bill:view:"

// billBalanceExpr converts every confirmed transaction touching the bill into
// the bill's currency and sums the signed contributions, truncated to 2
// decimal places. An empty set yields 0.00.
const billBalanceExpr = `
		COALESCE(TRUNC(SUM(
			CASE WHEN t.recipient_bill_id = b.id THEN
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
		WHERE b.id IN (t.sender_bill_id, t.recipient_bill_id)
			AND t.authorization_status = true`

// BillReadRepository serves bill projections. The snapshot balance is read
// from Redis first, falling back to the bills row; listings recompute the
// balance from confirmed transactions in a single correlated aggregate.
type BillReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.BillView]
}

func NewBillReadRepository(db *sql.DB, redisClient *goredis.Client) *BillReadRepository {
	return &BillReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.BillView](redisClient, 0),
	}
}

// SnapshotBalance returns the bill's denormalised balance: the cached view if
// present, otherwise the amount_money column. It may lag behind the computed
// balance by in-flight confirmations; the authoritative check happens at
// confirmation time.
func (r *BillReadRepository) SnapshotBalance(ctx context.Context, bill *models.Bill) decimal.Decimal {
	if view, ok := r.cache.Get(ctx, billViewKeyPrefix+bill.UUID); ok {
		return view.AmountMoney
	}
	return bill.AmountMoney
}

// GetView returns a BillView by attempting Redis first, then PostgreSQL.
func (r *BillReadRepository) GetView(ctx context.Context, uuid string) (*models.BillView, error) {
	if view, ok := r.cache.Get(ctx, billViewKeyPrefix+uuid); ok {
		return view, nil
	}

	query := `
		SELECT b.uuid, b.account_number, b.user_id, b.amount_money,
			c.uuid, c.name, c.base, c.current_exchange_rate,
			b.created_at, b.updated_at
		FROM bills b
		JOIN currencies c ON c.id = b.currency_id
		WHERE b.uuid = $1
	`
	var view models.BillView
	err := r.db.QueryRowContext(ctx, query, uuid).Scan(
		&view.UUID, &view.AccountNumber, &view.UserID, &view.AmountMoney,
		&view.Currency.UUID, &view.Currency.Name, &view.Currency.Base,
		&view.Currency.CurrentExchangeRate,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill view: %w", err)
	}

	r.CacheBillView(ctx, &view)
	return &view, nil
}

// ListByUser returns all of the user's bills. The balance column is the
// computed aggregate, not the snapshot, so listings are always current.
func (r *BillReadRepository) ListByUser(ctx context.Context, userID string) ([]models.BillView, error) {
	query := `
		SELECT b.uuid, b.account_number, b.user_id,
			(SELECT ` + billBalanceExpr + `) AS amount_money,
			c.uuid, c.name, c.base, c.current_exchange_rate,
			b.created_at, b.updated_at
		FROM bills b
		JOIN currencies c ON c.id = b.currency_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var views []models.BillView
	for rows.Next() {
		var view models.BillView
		if err := rows.Scan(
			&view.UUID, &view.AccountNumber, &view.UserID, &view.AmountMoney,
			&view.Currency.UUID, &view.Currency.Name, &view.Currency.Base,
			&view.Currency.CurrentExchangeRate,
			&view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

// CacheBillView stores the read model for a bill in Redis.
func (r *BillReadRepository) CacheBillView(ctx context.Context, view *models.BillView) {
	r.cache.Set(ctx, billViewKeyPrefix+view.UUID, view)
}

// InvalidateBillView drops the cached view, forcing the next read through to
// PostgreSQL.
func (r *BillReadRepository) InvalidateBillView(ctx context.Context, uuid string) {
	r.cache.Delete(ctx, billViewKeyPrefix+uuid)
}
