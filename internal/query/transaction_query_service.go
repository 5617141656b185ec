package query

import (
	"context"

	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
)

// TransactionQueryService serves transaction reads. Every query is scoped to
// the requesting user: pending transactions only resolve for their sender,
// listings only cover transfers the user took part in.
type TransactionQueryService struct {
	readRepo *repository.TransactionReadRepository
}

func NewTransactionQueryService(readRepo *repository.TransactionReadRepository) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) GetPendingTransaction(ctx context.Context, q cqrs.GetPendingTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetPendingByUUID(ctx, q.UUID, q.UserID)
}

// ListTransactions returns one page of the user's confirmed transfers,
// ordered by most recent activity, with the total count for pagination.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
	views, total, err := s.readRepo.ListConfirmedByUser(ctx, q.UserID, q.Take(), q.Skip())
	if err != nil {
		return nil, err
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return &models.TransactionPage{
		Transactions: views,
		Meta:         models.NewPageMeta(page, q.Take(), total),
	}, nil
}
