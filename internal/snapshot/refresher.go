// Package snapshot keeps the bills' denormalised amount_money display cache
// in step with confirmed transfers. The authoritative balance is always the
// computed aggregate; this only bounds how stale the snapshot can get.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harborbank/banking/internal/events"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
)

type Refresher struct {
	billRepo     *repository.BillRepository
	billRead     *repository.BillReadRepository
	currencyRepo *repository.CurrencyRepository
}

func NewRefresher(
	billRepo *repository.BillRepository,
	billRead *repository.BillReadRepository,
	currencyRepo *repository.CurrencyRepository,
) *Refresher {
	return &Refresher{billRepo: billRepo, billRead: billRead, currencyRepo: currencyRepo}
}

// HandleEvent applies the signed, currency-converted contribution of a
// confirmed transfer to both bills' snapshots and drops their cached views.
// Events of other types are acknowledged untouched.
func (r *Refresher) HandleEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionConfirmed {
		return nil
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to re-marshal event data: %w", err)
	}
	var confirmed events.TransactionConfirmedEvent
	if err := json.Unmarshal(data, &confirmed); err != nil {
		return fmt.Errorf("failed to decode transaction.confirmed event: %w", err)
	}

	sender, err := r.billRepo.FindByUUID(ctx, confirmed.SenderBillUUID)
	if err != nil {
		return fmt.Errorf("failed to load sender bill: %w", err)
	}
	recipient, err := r.billRepo.FindByUUID(ctx, confirmed.RecipientBillUUID)
	if err != nil {
		return fmt.Errorf("failed to load recipient bill: %w", err)
	}
	senderCurrency, err := r.currencyRepo.FindByID(ctx, sender.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to load sender currency: %w", err)
	}
	recipientCurrency, err := r.currencyRepo.FindByID(ctx, recipient.CurrencyID)
	if err != nil {
		return fmt.Errorf("failed to load recipient currency: %w", err)
	}

	transfer := models.Transaction{
		SenderBillID:    sender.ID,
		RecipientBillID: recipient.ID,
		AmountMoney:     confirmed.AmountMoney,
	}

	pairs := []struct {
		bill     *models.Bill
		currency *models.Currency
	}{
		{sender, senderCurrency},
		{recipient, recipientCurrency},
	}
	for _, p := range pairs {
		delta := models.SignedContribution(p.bill.ID, transfer, *senderCurrency, *p.currency)
		next := p.bill.AmountMoney.Add(delta).Truncate(2)
		if err := r.billRepo.UpdateSnapshot(ctx, p.bill.ID, next); err != nil {
			return fmt.Errorf("failed to refresh snapshot for bill %s: %w", p.bill.UUID, err)
		}
		r.billRead.InvalidateBillView(ctx, p.bill.UUID)
	}
	return nil
}
