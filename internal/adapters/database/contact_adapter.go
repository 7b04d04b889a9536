package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/repositories"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/S3nssay/catwalkframes-sub000/pkg/errors"
)

// ContactAdapter implements contact persistence in Postgres.
type ContactAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewContactAdapter creates a new contact adapter.
func NewContactAdapter(client *postgres.Client) repositories.ContactRepository {
	return &ContactAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a contact record.
func (a *ContactAdapter) Create(ctx context.Context, contact *entities.Contact) error {
	if contact == nil {
		return apperrors.NewInternalError("contact is nil", fmt.Errorf("contact is nil"))
	}
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":           contact.ID,
		"full_name":    contact.FullName,
		"email":        contact.Email,
		"phone":        contact.Phone,
		"inquiry_type": sql.NullString{String: contact.InquiryType, Valid: contact.InquiryType != ""},
		"timeframe":    sql.NullString{String: contact.Timeframe, Valid: contact.Timeframe != ""},
		"created_at":   contact.CreatedAt,
	}

	query, args, err := a.db.Insert("contacts").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build contact insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create contact", err)
	}

	return nil
}

// GetByID fetches one contact by id.
func (a *ContactAdapter) GetByID(ctx context.Context, id string) (*entities.Contact, error) {
	query, args, err := a.db.From("contacts").Where(goqu.Ex{"id": id}).Limit(1).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build contact select query", err)
	}

	var (
		contact     entities.Contact
		inquiryType sql.NullString
		timeframe   sql.NullString
	)
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&contact.ID,
		&contact.FullName,
		&contact.Email,
		&contact.Phone,
		&inquiryType,
		&timeframe,
		&contact.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("contact not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get contact", err)
	}

	contact.InquiryType = inquiryType.String
	contact.Timeframe = timeframe.String
	return &contact, nil
}
