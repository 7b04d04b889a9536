package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	apperrors "github.com/S3nssay/catwalkframes-sub000/pkg/errors"
)

// ValuationProcessor defines the interface for valuation orchestration
type ValuationProcessor interface {
	ProcessValuation(ctx context.Context, req services.ValuationRequest) (*services.ValuationResponse, error)
	RecordValuation(ctx context.Context, req services.ValuationRequest, estimate *entities.PropertyPriceEstimate, offer entities.OfferDetails) (*services.ValuationResponse, error)
}

// ValuationHandler handles valuation funnel requests
type ValuationHandler struct {
	service ValuationProcessor
}

// NewValuationHandler creates a new valuation handler
func NewValuationHandler(service ValuationProcessor) *ValuationHandler {
	return &ValuationHandler{
		service: service,
	}
}

// ProcessValuation handles POST /api/hpi-valuation
func (h *ValuationHandler) ProcessValuation(w http.ResponseWriter, r *http.Request) {
	var req services.ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	response, err := h.service.ProcessValuation(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// valuationRequestPayload carries pre-computed figures alongside the lead
// details for POST /api/valuation-request.
type valuationRequestPayload struct {
	services.ValuationRequest
	PriceInfo    *entities.PropertyPriceEstimate `json:"priceInfo"`
	OfferDetails entities.OfferDetails           `json:"offerDetails"`
}

// RecordValuation handles POST /api/valuation-request
func (h *ValuationHandler) RecordValuation(w http.ResponseWriter, r *http.Request) {
	var payload valuationRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	response, err := h.service.RecordValuation(r.Context(), payload.ValuationRequest, payload.PriceInfo, payload.OfferDetails)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// respondWithServiceError maps the application error taxonomy onto HTTP
// status codes.
func respondWithServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "something went wrong, please try again")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
