package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
)

func TestPostcodeService_Validate(t *testing.T) {
	t.Run("valid postcode maps lookup fields", func(t *testing.T) {
		lookup := new(MockPostcodeProvider)
		svc := services.NewPostcodeService(lookup)

		lookup.On("Lookup", mock.Anything, "SW1A 1AA").Return(&providers.PostcodeRecord{
			Postcode:      "SW1A 1AA",
			Region:        "London",
			AdminDistrict: "Westminster",
		}, nil)

		result := svc.Validate(context.Background(), "sw1a1aa")

		assert.True(t, result.Valid)
		assert.Equal(t, "SW1A 1AA", result.Postcode)
		assert.Equal(t, "London", result.Region)
		assert.Equal(t, "Westminster", result.District)
	})

	t.Run("absent fields come back as empty strings", func(t *testing.T) {
		lookup := new(MockPostcodeProvider)
		svc := services.NewPostcodeService(lookup)

		lookup.On("Lookup", mock.Anything, mock.Anything).Return(&providers.PostcodeRecord{
			Postcode: "ZE2 9AA",
		}, nil)

		result := svc.Validate(context.Background(), "ZE2 9AA")

		assert.True(t, result.Valid)
		assert.Equal(t, "", result.Region)
		assert.Equal(t, "", result.District)
	})

	t.Run("malformed input fails before any lookup", func(t *testing.T) {
		lookup := new(MockPostcodeProvider)
		svc := services.NewPostcodeService(lookup)

		for _, raw := range []string{"", "W", "NOT A POSTCODE", "12345678"} {
			result := svc.Validate(context.Background(), raw)
			assert.False(t, result.Valid, raw)
		}
		lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("unknown postcode maps to invalid", func(t *testing.T) {
		lookup := new(MockPostcodeProvider)
		svc := services.NewPostcodeService(lookup)

		lookup.On("Lookup", mock.Anything, mock.Anything).Return(nil, providers.ErrPostcodeNotFound)

		result := svc.Validate(context.Background(), "ZZ1 1ZZ")
		assert.False(t, result.Valid)
	})

	t.Run("transport failure maps to invalid without panicking", func(t *testing.T) {
		lookup := new(MockPostcodeProvider)
		svc := services.NewPostcodeService(lookup)

		lookup.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		result := svc.Validate(context.Background(), "SW1A 1AA")
		assert.False(t, result.Valid)
	})
}
