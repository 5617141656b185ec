package query

import (
	"context"

	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
)

// CurrencyQueryService serves the currency reference data.
type CurrencyQueryService struct {
	currencyRepo *repository.CurrencyRepository
}

func NewCurrencyQueryService(currencyRepo *repository.CurrencyRepository) *CurrencyQueryService {
	return &CurrencyQueryService{currencyRepo: currencyRepo}
}

func (s *CurrencyQueryService) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	return s.currencyRepo.List(ctx)
}
