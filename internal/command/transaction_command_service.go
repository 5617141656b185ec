package command

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/events"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
	"github.com/harborbank/banking/internal/utils"
)

// TransactionCommandService owns the two-phase transfer lifecycle: creating a
// pending transaction guarded by an authorization key, and confirming it.
type TransactionCommandService struct {
	writeRepo *repository.TransactionWriteRepository
	billRepo  *repository.BillRepository
	billRead  *repository.BillReadRepository
	publisher *events.Publisher
}

func NewTransactionCommandService(
	writeRepo *repository.TransactionWriteRepository,
	billRepo *repository.BillRepository,
	billRead *repository.BillReadRepository,
	publisher *events.Publisher,
) *TransactionCommandService {
	return &TransactionCommandService{
		writeRepo: writeRepo,
		billRepo:  billRepo,
		billRead:  billRead,
		publisher: publisher,
	}
}

// CreateTransaction resolves both bills (the sender scoped to the requesting
// user), validates the transfer and persists it in pending state. The
// sufficiency check here runs against the bill's snapshot balance; the
// authoritative computed balance is checked again at confirmation.
func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	type lookup struct {
		bill *models.Bill
		err  error
	}
	recipientCh := make(chan lookup, 1)
	go func() {
		bill, err := s.billRepo.FindByUUID(ctx, cmd.RecipientBillUUID)
		recipientCh <- lookup{bill: bill, err: err}
	}()

	sender, err := s.billRepo.FindOwnedByUUID(ctx, cmd.SenderBillUUID, cmd.UserID)
	recipientResult := <-recipientCh
	if err != nil {
		return nil, err
	}
	if recipientResult.err != nil {
		return nil, recipientResult.err
	}
	recipient := recipientResult.bill

	if sender.ID == recipient.ID {
		return nil, apperr.ErrSelfTransfer
	}

	if cmd.AmountMoney.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.ErrAmountNotEnough
	}
	if cmd.AmountMoney.GreaterThan(s.billRead.SnapshotBalance(ctx, sender)) {
		return nil, apperr.ErrAmountNotEnough
	}

	now := time.Now().UTC()
	transaction := &models.Transaction{
		UUID:             uuid.NewString(),
		SenderBillID:     sender.ID,
		RecipientBillID:  recipient.ID,
		AmountMoney:      cmd.AmountMoney,
		TransferTitle:    cmd.TransferTitle,
		AuthorizationKey: utils.GenerateAuthorizationKey(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.writeRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishTransactionCreated(ctx, events.TransactionCreatedEvent{
		TransactionUUID:   transaction.UUID,
		SenderBillUUID:    sender.UUID,
		RecipientBillUUID: recipient.UUID,
		UserID:            cmd.UserID,
		AmountMoney:       cmd.AmountMoney,
		TransferTitle:     cmd.TransferTitle,
	}); err != nil {
		log.Printf("Failed to publish transaction.created event: %v", err)
	}

	return transaction, nil
}

// ConfirmTransaction flips the pending transaction matching the key to
// confirmed, after the repository has re-checked the sender's computed
// balance under a row lock.
func (s *TransactionCommandService) ConfirmTransaction(ctx context.Context, cmd cqrs.ConfirmTransactionCommand) (*repository.ConfirmedTransfer, error) {
	transfer, err := s.writeRepo.ConfirmByAuthorizationKey(ctx, cmd.AuthorizationKey, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishTransactionConfirmed(ctx, events.TransactionConfirmedEvent{
		TransactionUUID:   transfer.UUID,
		SenderBillUUID:    transfer.SenderBillUUID,
		RecipientBillUUID: transfer.RecipientBillUUID,
		AmountMoney:       transfer.AmountMoney,
	}); err != nil {
		log.Printf("Failed to publish transaction.confirmed event: %v", err)
	}

	return transfer, nil
}
