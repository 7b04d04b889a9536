package entities

import (
	"time"
)

// ValuationStatus represents the status of a valuation record
type ValuationStatus string

const (
	ValuationStatusPending ValuationStatus = "pending"
	ValuationStatusSaved   ValuationStatus = "saved"
)

// Valuation links a contact to an estimated market value and cash offer.
// Records are created once at submission time and not mutated afterwards;
// the status field exists for a downstream admin workflow.
type Valuation struct {
	ID             string          `json:"id" db:"id"`
	ContactID      string          `json:"contactId" db:"contact_id"`
	PropertyID     string          `json:"propertyId,omitempty" db:"property_id"`
	Postcode       string          `json:"postcode" db:"postcode"`
	EstimatedValue int             `json:"estimatedValue" db:"estimated_value"`
	OfferValue     int             `json:"offerValue" db:"offer_value"`
	Status         ValuationStatus `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
}
