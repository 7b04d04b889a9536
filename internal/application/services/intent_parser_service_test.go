package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

func TestRegexIntentParser_ParseQuery(t *testing.T) {
	parser := services.NewRegexIntentParser()

	parse := func(t *testing.T, query string) *entities.ParsedIntent {
		t.Helper()
		parsed, err := parser.ParseQuery(context.Background(), query)
		require.NoError(t, err)
		return parsed
	}

	t.Run("greetings short-circuit to conversation", func(t *testing.T) {
		for _, q := range []string{"Hello!", "hi there", "Good morning", "thanks so much"} {
			parsed := parse(t, q)
			assert.Equal(t, entities.IntentConversation, parsed.Intent, q)
			assert.InDelta(t, 0.9, parsed.Confidence, 0.001)
		}
	})

	t.Run("extracts full search filters from a rental query", func(t *testing.T) {
		parsed := parse(t, "Show me 2 bed flats for rent under £3500 in Bayswater")

		assert.Equal(t, entities.IntentPropertySearch, parsed.Intent)
		assert.Equal(t, entities.ListingTypeRent, parsed.Filters.ListingType)
		assert.Equal(t, []entities.PropertyType{entities.PropertyTypeFlat}, parsed.Filters.PropertyType)
		assert.Equal(t, 2, parsed.Filters.Bedrooms)
		// 3500 sits inside the thousands heuristic window, so it is read
		// as £3,500,000.
		assert.Equal(t, 3500000, parsed.Filters.MaxPrice)
		assert.Equal(t, []string{"Bayswater"}, parsed.Filters.Areas)
	})

	t.Run("price string heuristics", func(t *testing.T) {
		tests := []struct {
			query    string
			maxPrice int
		}{
			{"houses under 500k", 500000},
			{"houses under 500", 500000},
			{"houses under 1500000", 1500000},
			{"houses under £1,250,000", 1250000},
			{"houses under 95", 95},
		}
		for _, tt := range tests {
			parsed := parse(t, tt.query)
			assert.Equal(t, tt.maxPrice, parsed.Filters.MaxPrice, tt.query)
		}
	})

	t.Run("extracts min price and ranges", func(t *testing.T) {
		parsed := parse(t, "flats over 300k")
		assert.Equal(t, 300000, parsed.Filters.MinPrice)

		parsed = parse(t, "houses between 400k and 600k")
		assert.Equal(t, 400000, parsed.Filters.MinPrice)
		assert.Equal(t, 600000, parsed.Filters.MaxPrice)
	})

	t.Run("collects all property type matches", func(t *testing.T) {
		parsed := parse(t, "detached or semi-detached houses for sale")
		assert.Contains(t, parsed.Filters.PropertyType, entities.PropertyTypeDetached)
		assert.Contains(t, parsed.Filters.PropertyType, entities.PropertyTypeSemiDetached)
		assert.Equal(t, entities.ListingTypeSale, parsed.Filters.ListingType)
	})

	t.Run("maps outcodes to their area", func(t *testing.T) {
		parsed := parse(t, "2 bed flats in W11")
		assert.Equal(t, "W11", parsed.Filters.Postcode)
		assert.Contains(t, parsed.Filters.Areas, "Notting Hill")
	})

	t.Run("recognises gazetteer areas with apostrophes", func(t *testing.T) {
		parsed := parse(t, "flats to let in Shepherds Bush")
		assert.Contains(t, parsed.Filters.Areas, "Shepherd's Bush")
		assert.Equal(t, entities.ListingTypeRent, parsed.Filters.ListingType)
	})

	t.Run("unmatched text yields unknown intent", func(t *testing.T) {
		parsed := parse(t, "what is the meaning of life")
		assert.Equal(t, entities.IntentUnknown, parsed.Intent)
	})

	t.Run("confidence always clamped to unit interval", func(t *testing.T) {
		queries := []string{
			"",
			"hello",
			"show me 3 bed 2 bath semi-detached houses for sale between 400k and 600k in Notting Hill W11",
			"asdf qwerty",
			"flats flats flats flats",
		}
		for _, q := range queries {
			parsed := parse(t, q)
			assert.GreaterOrEqual(t, parsed.Confidence, 0.0, q)
			assert.LessOrEqual(t, parsed.Confidence, 1.0, q)
		}
	})

	t.Run("bathroom counts are extracted", func(t *testing.T) {
		parsed := parse(t, "3 bed 2 bathroom house for sale")
		assert.Equal(t, 3, parsed.Filters.Bedrooms)
		assert.Equal(t, 2, parsed.Filters.Bathrooms)
	})
}
