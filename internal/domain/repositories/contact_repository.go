package repositories

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// ContactRepository defines the interface for contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *entities.Contact) error
	GetByID(ctx context.Context, id string) (*entities.Contact, error)
}
