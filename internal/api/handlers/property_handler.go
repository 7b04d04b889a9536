package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/repositories"
)

// PropertySearcher defines the interface for natural-language search
type PropertySearcher interface {
	NaturalSearch(ctx context.Context, query string) (*services.NaturalSearchResult, error)
}

// PropertyHandler handles property listing and search requests
type PropertyHandler struct {
	search     PropertySearcher
	properties repositories.PropertyRepository
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(search PropertySearcher, properties repositories.PropertyRepository) *PropertyHandler {
	return &PropertyHandler{
		search:     search,
		properties: properties,
	}
}

type naturalSearchRequest struct {
	Query string `json:"query"`
}

// NaturalSearch handles POST /api/properties/natural-search
func (h *PropertyHandler) NaturalSearch(w http.ResponseWriter, r *http.Request) {
	var req naturalSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.search.NaturalSearch(r.Context(), req.Query)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListProperties handles GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	properties, err := h.properties.List(r.Context(), limit, offset)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if properties == nil {
		properties = []*entities.Property{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetProperty handles GET /api/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	property, err := h.properties.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, property)
}
