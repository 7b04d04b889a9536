package services

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/repositories"
	appErrors "github.com/S3nssay/catwalkframes-sub000/pkg/errors"
)

const defaultSearchLimit = 20

// NaturalSearchResult pairs the parsed intent with the matching
// properties so callers can show the interpretation alongside results.
type NaturalSearchResult struct {
	Intent     *entities.ParsedIntent `json:"intent"`
	Properties []*entities.Property   `json:"properties"`
}

// SearchService turns free-text queries into property searches.
type SearchService struct {
	intents *IntentService
	search  repositories.PropertySearchRepository
}

// NewSearchService creates a search service.
func NewSearchService(intents *IntentService, search repositories.PropertySearchRepository) *SearchService {
	return &SearchService{intents: intents, search: search}
}

// NaturalSearch parses the query and, for search intents, runs the
// extracted filters against the search index. Conversation and unknown
// intents return the parse alone with no results.
func (s *SearchService) NaturalSearch(ctx context.Context, query string) (*NaturalSearchResult, error) {
	parsed := s.intents.ParseQuery(ctx, query)
	result := &NaturalSearchResult{Intent: parsed, Properties: []*entities.Property{}}

	if parsed.Intent != entities.IntentPropertySearch {
		return result, nil
	}
	if s.search == nil {
		return nil, appErrors.NewInternalError("property search is not configured", nil)
	}

	properties, err := s.search.Search(ctx, parsed.Filters, defaultSearchLimit)
	if err != nil {
		return nil, appErrors.NewExternalError("failed to search properties", err)
	}
	result.Properties = properties
	return result, nil
}
