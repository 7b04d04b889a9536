package repositories

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// PropertySearchRepository defines the interface for the search index.
type PropertySearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, property *entities.Property) error
	Search(ctx context.Context, filters entities.SearchFilters, limit int) ([]*entities.Property, error)
}
