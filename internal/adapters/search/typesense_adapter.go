package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/repositories"
	tsclient "github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/typesense"
	"github.com/S3nssay/catwalkframes-sub000/pkg/ukpostcode"
)

const collectionName = "properties"

// TypesenseAdapter implements property search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements PropertySearchRepository
var _ repositories.PropertySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "postcode", Type: "string"},
			{Name: "outcode", Type: "string", Facet: pointer.True()},
			{Name: "address_line1", Type: "string"},
			{Name: "area", Type: "string", Facet: pointer.True()},
			{Name: "property_type", Type: "string", Facet: pointer.True()},
			{Name: "bedrooms", Type: "int32", Facet: pointer.True()},
			{Name: "bathrooms", Type: "int32", Facet: pointer.True()},
			{Name: "price", Type: "int64", Facet: pointer.True()},
			{Name: "listing_type", Type: "string", Facet: pointer.True()},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes a property
func (a *TypesenseAdapter) Index(ctx context.Context, property *entities.Property) error {
	document := map[string]interface{}{
		"id":            property.ID,
		"postcode":      property.Postcode,
		"outcode":       ukpostcode.Outcode(property.Postcode),
		"address_line1": property.AddressLine1,
		"area":          property.Area,
		"property_type": string(property.PropertyType),
		"bedrooms":      property.Bedrooms,
		"bathrooms":     property.Bathrooms,
		"price":         property.Price,
		"listing_type":  string(property.ListingType),
		"description":   property.Description,
		"created_at":    property.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index property: %w", err)
	}

	return nil
}

// Search searches properties using structured filters from the intent parser
func (a *TypesenseAdapter) Search(ctx context.Context, filters entities.SearchFilters, limit int) ([]*entities.Property, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(queryText(filters)),
		QueryBy: pointer.String("area,address_line1,description"),
		PerPage: pointer.Int(limit),
		SortBy:  pointer.String("created_at:desc"),
	}
	if filterBy := buildFilterBy(filters); filterBy != "" {
		searchParams.FilterBy = pointer.String(filterBy)
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}

	properties := []*entities.Property{}
	if result.Hits == nil {
		return properties, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		properties = append(properties, documentToProperty(*hit.Document))
	}

	return properties, nil
}

// queryText uses named areas as the text query when present; otherwise a
// wildcard search relying purely on filters.
func queryText(filters entities.SearchFilters) string {
	if len(filters.Areas) > 0 {
		return strings.Join(filters.Areas, " ")
	}
	return "*"
}

func buildFilterBy(filters entities.SearchFilters) string {
	var clauses []string

	if filters.ListingType != "" {
		clauses = append(clauses, fmt.Sprintf("listing_type:=%s", filters.ListingType))
	}
	if len(filters.PropertyType) > 0 {
		types := make([]string, len(filters.PropertyType))
		for i, t := range filters.PropertyType {
			types[i] = string(t)
		}
		clauses = append(clauses, fmt.Sprintf("property_type:=[%s]", strings.Join(types, ",")))
	}
	if filters.Bedrooms > 0 {
		clauses = append(clauses, fmt.Sprintf("bedrooms:=%d", filters.Bedrooms))
	}
	if filters.Bathrooms > 0 {
		clauses = append(clauses, fmt.Sprintf("bathrooms:=%d", filters.Bathrooms))
	}
	if filters.MinPrice > 0 {
		clauses = append(clauses, fmt.Sprintf("price:>=%d", filters.MinPrice))
	}
	if filters.MaxPrice > 0 {
		clauses = append(clauses, fmt.Sprintf("price:<=%d", filters.MaxPrice))
	}
	if filters.Postcode != "" {
		clauses = append(clauses, fmt.Sprintf("outcode:=%s", strings.ToUpper(filters.Postcode)))
	}

	return strings.Join(clauses, " && ")
}

func documentToProperty(doc map[string]interface{}) *entities.Property {
	property := &entities.Property{
		ID:           docString(doc, "id"),
		Postcode:     docString(doc, "postcode"),
		AddressLine1: docString(doc, "address_line1"),
		Area:         docString(doc, "area"),
		PropertyType: entities.PropertyType(docString(doc, "property_type")),
		Bedrooms:     docInt(doc, "bedrooms"),
		Bathrooms:    docInt(doc, "bathrooms"),
		Price:        docInt(doc, "price"),
		ListingType:  entities.ListingType(docString(doc, "listing_type")),
		Description:  docString(doc, "description"),
	}
	if ts := docInt(doc, "created_at"); ts > 0 {
		property.CreatedAt = time.Unix(int64(ts), 0)
	}
	return property
}

func docString(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func docInt(doc map[string]interface{}, key string) int {
	switch v := doc[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}
