package services

import (
	"context"
	"errors"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
	"github.com/S3nssay/catwalkframes-sub000/pkg/ukpostcode"
)

// PostcodeService validates raw postcode input against the lookup service.
type PostcodeService struct {
	lookup providers.PostcodeProvider
}

// NewPostcodeService creates a new postcode service.
func NewPostcodeService(lookup providers.PostcodeProvider) *PostcodeService {
	return &PostcodeService{lookup: lookup}
}

// Validate normalizes the input and resolves it against the lookup
// service. Unknown postcodes and service failures both yield valid=false;
// no error escapes (single attempt, failures logged only).
func (s *PostcodeService) Validate(ctx context.Context, raw string) *entities.PostcodeValidation {
	normalized := ukpostcode.Normalize(raw)
	if !ukpostcode.IsValidFormat(normalized) {
		return &entities.PostcodeValidation{Valid: false}
	}

	record, err := s.lookup.Lookup(ctx, normalized)
	if err != nil {
		if !errors.Is(err, providers.ErrPostcodeNotFound) {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("postcode", normalized).
				Msg("postcode lookup failed, treating as invalid")
		}
		return &entities.PostcodeValidation{Valid: false}
	}

	return &entities.PostcodeValidation{
		Valid:    true,
		Postcode: record.Postcode,
		Region:   record.Region,
		District: record.AdminDistrict,
	}
}
