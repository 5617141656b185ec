package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/models"
)

// CurrencyRepository serves the currency reference table.
type CurrencyRepository struct {
	db *sql.DB
}

func NewCurrencyRepository(db *sql.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) FindByUUID(ctx context.Context, uuid string) (*models.Currency, error) {
	query := `
		SELECT id, uuid, name, base, current_exchange_rate, created_at, updated_at
		FROM currencies
		WHERE uuid = $1
	`
	var currency models.Currency
	err := r.db.QueryRowContext(ctx, query, uuid).Scan(
		&currency.ID, &currency.UUID, &currency.Name, &currency.Base,
		&currency.CurrentExchangeRate, &currency.CreatedAt, &currency.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrCurrencyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *CurrencyRepository) FindByID(ctx context.Context, id int64) (*models.Currency, error) {
	query := `
		SELECT id, uuid, name, base, current_exchange_rate, created_at, updated_at
		FROM currencies
		WHERE id = $1
	`
	var currency models.Currency
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&currency.ID, &currency.UUID, &currency.Name, &currency.Base,
		&currency.CurrentExchangeRate, &currency.CreatedAt, &currency.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrCurrencyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *CurrencyRepository) List(ctx context.Context) ([]models.Currency, error) {
	query := `
		SELECT id, uuid, name, base, current_exchange_rate, created_at, updated_at
		FROM currencies
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []models.Currency
	for rows.Next() {
		var currency models.Currency
		if err := rows.Scan(
			&currency.ID, &currency.UUID, &currency.Name, &currency.Base,
			&currency.CurrentExchangeRate, &currency.CreatedAt, &currency.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, currency)
	}
	return currencies, rows.Err()
}
