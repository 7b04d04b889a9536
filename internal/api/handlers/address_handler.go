package handlers

import (
	"context"
	"net/http"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
)

// AddressFinder defines the interface for address autocompletion
type AddressFinder interface {
	FindAddresses(ctx context.Context, term string) ([]entities.AddressCandidate, error)
}

// AddressHandler handles address lookup requests
type AddressHandler struct {
	provider AddressFinder
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(provider AddressFinder) *AddressHandler {
	return &AddressHandler{
		provider: provider,
	}
}

// LookupAddresses handles GET /api/addresses/lookup?term=
func (h *AddressHandler) LookupAddresses(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		respondWithError(w, http.StatusBadRequest, "term query parameter is required")
		return
	}

	// Address lookup is a UX nicety independent of pricing; lookup
	// failures degrade to an empty candidate list rather than an error.
	addresses, err := h.provider.FindAddresses(r.Context(), term)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().
			Err(err).
			Str("term", term).
			Msg("address lookup failed, returning empty candidate list")
		addresses = nil
	}
	if addresses == nil {
		addresses = []entities.AddressCandidate{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"addresses": addresses,
		"count":     len(addresses),
	})
}
