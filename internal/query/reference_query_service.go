package query

import (
	"context"

	"github.com/harborbank/banking/internal/models"
	"github.com/harborbank/banking/internal/repository"
)

// ReferenceQueryService serves the seeded reference data: the languages the
// app can be localised to and the message keys translations hang off.
type ReferenceQueryService struct {
	repo *repository.ReferenceRepository
}

func NewReferenceQueryService(repo *repository.ReferenceRepository) *ReferenceQueryService {
	return &ReferenceQueryService{repo: repo}
}

func (s *ReferenceQueryService) ListLanguages(ctx context.Context) ([]models.Language, error) {
	return s.repo.ListLanguages(ctx)
}

func (s *ReferenceQueryService) ListMessageKeys(ctx context.Context) ([]models.MessageKey, error) {
	return s.repo.ListMessageKeys(ctx)
}
