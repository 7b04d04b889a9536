package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/repositories"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
	appErrors "github.com/S3nssay/catwalkframes-sub000/pkg/errors"
	"github.com/S3nssay/catwalkframes-sub000/pkg/ukpostcode"
)

// ValuationRequest is the lead-capture submission from the valuation form.
type ValuationRequest struct {
	Postcode     string                `json:"postcode"`
	AddressLine1 string                `json:"addressLine1"`
	PropertyType entities.PropertyType `json:"propertyType"`
	Bedrooms     int                   `json:"bedrooms"`
	FullName     string                `json:"fullName"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone"`
	Timeframe    string                `json:"timeframe,omitempty"`
}

// ValuationResponse is the orchestrator's success payload. Once postcode
// validation passes the pipeline always produces one of these.
type ValuationResponse struct {
	Success       bool                            `json:"success"`
	PriceInfo     *entities.PropertyPriceEstimate `json:"priceInfo"`
	OfferDetails  entities.OfferDetails           `json:"offerDetails"`
	Notifications entities.NotificationResult     `json:"notifications"`
}

// ValuationService orchestrates the full valuation funnel:
// validate, price, persist best-effort, notify, respond.
type ValuationService struct {
	postcodes     *PostcodeService
	pricing       *PricingService
	notifications *NotificationService
	properties    repositories.PropertyRepository
	contacts      repositories.ContactRepository
	valuations    repositories.ValuationRepository
}

// NewValuationService creates a valuation orchestrator. The repositories
// may be nil; persistence is then skipped entirely.
func NewValuationService(
	postcodes *PostcodeService,
	pricing *PricingService,
	notifications *NotificationService,
	properties repositories.PropertyRepository,
	contacts repositories.ContactRepository,
	valuations repositories.ValuationRepository,
) *ValuationService {
	return &ValuationService{
		postcodes:     postcodes,
		pricing:       pricing,
		notifications: notifications,
		properties:    properties,
		contacts:      contacts,
		valuations:    valuations,
	}
}

// ProcessValuation runs the full pipeline. The only error it returns is a
// validation error for a rejected postcode or missing fields; everything
// after validation degrades instead of failing.
func (s *ValuationService) ProcessValuation(ctx context.Context, req ValuationRequest) (*ValuationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	validation := s.postcodes.Validate(ctx, req.Postcode)
	if !validation.Valid {
		return nil, appErrors.NewValidationError("postcode is not a valid UK postcode")
	}

	estimate := s.pricing.Estimate(ctx, validation.Postcode, req.PropertyType, req.Bedrooms)
	offer := CalculateOffer(estimate.AveragePrice)

	s.persist(ctx, req, validation, estimate, offer)

	notifications := s.notify(ctx, req, estimate, offer)

	return &ValuationResponse{
		Success:       true,
		PriceInfo:     estimate,
		OfferDetails:  offer,
		Notifications: notifications,
	}, nil
}

// RecordValuation persists and notifies for pre-computed figures, skipping
// the pricing tier. Used when the caller already holds an estimate.
func (s *ValuationService) RecordValuation(ctx context.Context, req ValuationRequest, estimate *entities.PropertyPriceEstimate, offer entities.OfferDetails) (*ValuationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if estimate == nil || estimate.AveragePrice <= 0 {
		return nil, appErrors.NewValidationError("price estimate is required")
	}

	validation := s.postcodes.Validate(ctx, req.Postcode)
	if !validation.Valid {
		return nil, appErrors.NewValidationError("postcode is not a valid UK postcode")
	}

	s.persist(ctx, req, validation, estimate, offer)
	notifications := s.notify(ctx, req, estimate, offer)

	return &ValuationResponse{
		Success:       true,
		PriceInfo:     estimate,
		OfferDetails:  offer,
		Notifications: notifications,
	}, nil
}

// persist creates Property, Contact and Valuation records. Failures are
// logged and swallowed: a lost lead record must not block the offer.
func (s *ValuationService) persist(ctx context.Context, req ValuationRequest, validation *entities.PostcodeValidation, estimate *entities.PropertyPriceEstimate, offer entities.OfferDetails) {
	logger := observability.LoggerFromContext(ctx)
	now := time.Now().UTC()

	var propertyID string
	if s.properties != nil {
		property := &entities.Property{
			ID:           uuid.New().String(),
			Postcode:     validation.Postcode,
			AddressLine1: req.AddressLine1,
			Area:         validation.District,
			PropertyType: req.PropertyType,
			Bedrooms:     req.Bedrooms,
			Price:        estimate.AveragePrice,
			ListingType:  entities.ListingTypeSale,
			CreatedAt:    now,
		}
		if err := s.properties.Create(ctx, property); err != nil {
			logger.Warn().Err(err).Msg("failed to persist property record")
		} else {
			propertyID = property.ID
		}
	}

	var contactID string
	if s.contacts != nil {
		contact := &entities.Contact{
			ID:          uuid.New().String(),
			FullName:    req.FullName,
			Email:       req.Email,
			Phone:       NormalizePhoneNumber(req.Phone),
			InquiryType: "valuation",
			Timeframe:   req.Timeframe,
			CreatedAt:   now,
		}
		if err := s.contacts.Create(ctx, contact); err != nil {
			logger.Warn().Err(err).Msg("failed to persist contact record")
		} else {
			contactID = contact.ID
		}
	}

	if s.valuations != nil && contactID != "" {
		valuation := &entities.Valuation{
			ID:             uuid.New().String(),
			ContactID:      contactID,
			PropertyID:     propertyID,
			Postcode:       validation.Postcode,
			EstimatedValue: estimate.AveragePrice,
			OfferValue:     offer.OfferPrice,
			Status:         entities.ValuationStatusPending,
			CreatedAt:      now,
		}
		if err := s.valuations.Create(ctx, valuation); err != nil {
			logger.Warn().Err(err).Msg("failed to persist valuation record")
		}
	}
}

func (s *ValuationService) notify(ctx context.Context, req ValuationRequest, estimate *entities.PropertyPriceEstimate, offer entities.OfferDetails) entities.NotificationResult {
	if s.notifications == nil {
		return entities.NotificationResult{Errors: []string{"notifications are not configured"}}
	}
	address := req.AddressLine1
	if address == "" {
		address = ukpostcode.Normalize(req.Postcode)
	}
	return s.notifications.SendOffer(ctx, entities.OfferNotification{
		Address:      address,
		PhoneNumber:  req.Phone,
		CustomerName: req.FullName,
		MarketValue:  estimate.AveragePrice,
		Offer:        offer,
	})
}

func validateRequest(req ValuationRequest) error {
	var missing []string
	if strings.TrimSpace(req.Postcode) == "" {
		missing = append(missing, "postcode")
	}
	if req.PropertyType == "" {
		missing = append(missing, "propertyType")
	}
	if req.Bedrooms <= 0 {
		missing = append(missing, "bedrooms")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return appErrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
