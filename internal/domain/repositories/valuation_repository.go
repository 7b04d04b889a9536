package repositories

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// ValuationRepository defines the interface for valuation persistence.
type ValuationRepository interface {
	Create(ctx context.Context, valuation *entities.Valuation) error
	GetByID(ctx context.Context, id string) (*entities.Valuation, error)
}
