package entities

import (
	"time"
)

// ListingType represents whether a property is offered for sale or rent
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// PropertyType represents the physical type of a property
type PropertyType string

const (
	PropertyTypeDetached     PropertyType = "detached"
	PropertyTypeSemiDetached PropertyType = "semi-detached"
	PropertyTypeTerraced     PropertyType = "terraced"
	PropertyTypeFlat         PropertyType = "flat"
	PropertyTypeBungalow     PropertyType = "bungalow"
	PropertyTypeOther        PropertyType = "other"
)

// Property represents a listed or valued property
type Property struct {
	ID           string       `json:"id" db:"id"`
	Postcode     string       `json:"postcode" db:"postcode"`
	AddressLine1 string       `json:"addressLine1" db:"address_line1"`
	Area         string       `json:"area,omitempty" db:"area"`
	PropertyType PropertyType `json:"propertyType" db:"property_type"`
	Bedrooms     int          `json:"bedrooms" db:"bedrooms"`
	Bathrooms    int          `json:"bathrooms" db:"bathrooms"`
	Price        int          `json:"price" db:"price"`
	ListingType  ListingType  `json:"listingType" db:"listing_type"`
	Description  string       `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}
