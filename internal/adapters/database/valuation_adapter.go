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

// ValuationAdapter implements valuation persistence in Postgres.
type ValuationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewValuationAdapter creates a new valuation adapter.
func NewValuationAdapter(client *postgres.Client) repositories.ValuationRepository {
	return &ValuationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a valuation record.
func (a *ValuationAdapter) Create(ctx context.Context, valuation *entities.Valuation) error {
	if valuation == nil {
		return apperrors.NewInternalError("valuation is nil", fmt.Errorf("valuation is nil"))
	}
	if valuation.ID == "" {
		valuation.ID = uuid.New().String()
	}
	if valuation.Status == "" {
		valuation.Status = entities.ValuationStatusPending
	}
	if valuation.CreatedAt.IsZero() {
		valuation.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":              valuation.ID,
		"contact_id":      valuation.ContactID,
		"property_id":     sql.NullString{String: valuation.PropertyID, Valid: valuation.PropertyID != ""},
		"postcode":        valuation.Postcode,
		"estimated_value": valuation.EstimatedValue,
		"offer_value":     valuation.OfferValue,
		"status":          string(valuation.Status),
		"created_at":      valuation.CreatedAt,
	}

	query, args, err := a.db.Insert("valuations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build valuation insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create valuation", err)
	}

	return nil
}

// GetByID fetches one valuation by id.
func (a *ValuationAdapter) GetByID(ctx context.Context, id string) (*entities.Valuation, error) {
	query, args, err := a.db.From("valuations").Where(goqu.Ex{"id": id}).Limit(1).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build valuation select query", err)
	}

	var (
		valuation  entities.Valuation
		propertyID sql.NullString
		status     string
	)
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&valuation.ID,
		&valuation.ContactID,
		&propertyID,
		&valuation.Postcode,
		&valuation.EstimatedValue,
		&valuation.OfferValue,
		&status,
		&valuation.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("valuation not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get valuation", err)
	}

	valuation.PropertyID = propertyID.String
	valuation.Status = entities.ValuationStatus(status)
	return &valuation, nil
}
