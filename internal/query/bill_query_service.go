package query

import (
	"context"

	"github.com/harborbank/banking/internal/apperr"
	"github.com/harborbank/banking/internal/cqrs"
	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
)

// BillQueryService serves bill reads for the owning user.
type BillQueryService struct {
	readRepo *repository.BillReadRepository
}

func NewBillQueryService(readRepo *repository.BillReadRepository) *BillQueryService {
	return &BillQueryService{readRepo: readRepo}
}

// ListBills returns the user's bills with balances recomputed from confirmed
// transactions rather than the display snapshot.
func (s *BillQueryService) ListBills(ctx context.Context, q cqrs.ListBillsQuery) ([]models.BillView, error) {
	return s.readRepo.ListByUser(ctx, q.UserID)
}

// GetBill returns a single bill view, Redis first with a PostgreSQL
// fallback. Bills of other users resolve as not found.
func (s *BillQueryService) GetBill(ctx context.Context, q cqrs.GetBillQuery) (*models.BillView, error) {
	view, err := s.readRepo.GetView(ctx, q.UUID)
	if err != nil {
		return nil, err
	}
	if view.UserID != q.UserID {
		return nil, apperr.ErrBillNotFound
	}
	return view, nil
}
