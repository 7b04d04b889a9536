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

// PropertyAdapter implements property persistence in Postgres.
type PropertyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPropertyAdapter creates a new property adapter.
func NewPropertyAdapter(client *postgres.Client) repositories.PropertyRepository {
	return &PropertyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a property record.
func (a *PropertyAdapter) Create(ctx context.Context, property *entities.Property) error {
	if property == nil {
		return apperrors.NewInternalError("property is nil", fmt.Errorf("property is nil"))
	}
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":            property.ID,
		"postcode":      property.Postcode,
		"address_line1": property.AddressLine1,
		"area":          sql.NullString{String: property.Area, Valid: property.Area != ""},
		"property_type": string(property.PropertyType),
		"bedrooms":      property.Bedrooms,
		"bathrooms":     property.Bathrooms,
		"price":         property.Price,
		"listing_type":  string(property.ListingType),
		"description":   sql.NullString{String: property.Description, Valid: property.Description != ""},
		"created_at":    property.CreatedAt,
	}

	query, args, err := a.db.Insert("properties").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build property insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create property", err)
	}

	return nil
}

// GetByID fetches one property by id.
func (a *PropertyAdapter) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	query, args, err := a.db.From("properties").Where(goqu.Ex{"id": id}).Limit(1).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build property select query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	property, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("property not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get property", err)
	}
	return property, nil
}

// List returns properties ordered by creation time, newest first.
func (a *PropertyAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Property, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query, args, err := a.db.From("properties").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build property list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list properties", err)
	}
	defer rows.Close()

	properties := []*entities.Property{}
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan property", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate properties", err)
	}

	return properties, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*entities.Property, error) {
	var (
		property     entities.Property
		area         sql.NullString
		description  sql.NullString
		propertyType string
		listingType  string
	)

	err := row.Scan(
		&property.ID,
		&property.Postcode,
		&property.AddressLine1,
		&area,
		&propertyType,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.Price,
		&listingType,
		&description,
		&property.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	property.Area = area.String
	property.Description = description.String
	property.PropertyType = entities.PropertyType(propertyType)
	property.ListingType = entities.ListingType(listingType)
	return &property, nil
}
