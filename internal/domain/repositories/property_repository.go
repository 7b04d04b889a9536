package repositories

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// PropertyRepository defines the interface for property persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *entities.Property) error
	GetByID(ctx context.Context, id string) (*entities.Property, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Property, error)
}
