package command

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/events"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
	"github.com/harborbank/banking/internal/utils"
)

// BillCommandService opens bills for users.
type BillCommandService struct {
	billRepo     *repository.BillRepository
	billRead     *repository.BillReadRepository
	currencyRepo *repository.CurrencyRepository
	publisher    *events.Publisher
}

func NewBillCommandService(
	billRepo *repository.BillRepository,
	billRead *repository.BillReadRepository,
	currencyRepo *repository.CurrencyRepository,
	publisher *events.Publisher,
) *BillCommandService {
	return &BillCommandService{
		billRepo:     billRepo,
		billRead:     billRead,
		currencyRepo: currencyRepo,
		publisher:    publisher,
	}
}

// CreateBill opens a new zero-balance bill in the requested currency.
func (s *BillCommandService) CreateBill(ctx context.Context, cmd cqrs.CreateBillCommand) (*models.BillView, error) {
	currency, err := s.currencyRepo.FindByUUID(ctx, cmd.CurrencyUUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bill := &models.Bill{
		UUID:          uuid.NewString(),
		AccountNumber: utils.GenerateAccountNumber(),
		UserID:        cmd.UserID,
		CurrencyID:    currency.ID,
		AmountMoney:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	view := &models.BillView{
		UUID:          bill.UUID,
		AccountNumber: bill.AccountNumber,
		UserID:        bill.UserID,
		AmountMoney:   bill.AmountMoney,
		Currency: models.CurrencyView{
			UUID:                currency.UUID,
			Name:                currency.Name,
			Base:                currency.Base,
			CurrentExchangeRate: currency.CurrentExchangeRate,
		},
		CreatedAt: bill.CreatedAt,
		UpdatedAt: bill.UpdatedAt,
	}
	s.billRead.CacheBillView(ctx, view)

	if err := s.publisher.PublishBillCreated(ctx, events.BillCreatedEvent{
		BillUUID:      bill.UUID,
		AccountNumber: bill.AccountNumber,
		UserID:        bill.UserID,
		CurrencyUUID:  currency.UUID,
	}); err != nil {
		log.Printf("Failed to publish bill.created event: %v", err)
	}

	return view, nil
}
