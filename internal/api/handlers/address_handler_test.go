package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/S3nssay/catwalkframes-sub000/internal/api/handlers"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// MockAddressFinder defines the mock address provider
type MockAddressFinder struct {
	mock.Mock
}

func (m *MockAddressFinder) FindAddresses(ctx context.Context, term string) ([]entities.AddressCandidate, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AddressCandidate), args.Error(1)
}

type addressLookupResponse struct {
	Addresses []entities.AddressCandidate `json:"addresses"`
	Count     int                         `json:"count"`
}

func TestAddressHandler_LookupAddresses(t *testing.T) {
	t.Run("returns candidate addresses", func(t *testing.T) {
		mockProvider := new(MockAddressFinder)
		handler := handlers.NewAddressHandler(mockProvider)

		candidates := []entities.AddressCandidate{
			{Line1: "14 Westbourne Terrace", Town: "London", Postcode: "W2 4UW"},
			{Line1: "16 Westbourne Terrace", Town: "London", Postcode: "W2 4UW"},
		}
		mockProvider.On("FindAddresses", mock.Anything, "W2 4UW").Return(candidates, nil)

		req := httptest.NewRequest("GET", "/api/addresses/lookup?term=W2+4UW", nil)
		w := httptest.NewRecorder()

		handler.LookupAddresses(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decoded addressLookupResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
		assert.Equal(t, 2, decoded.Count)
		assert.Equal(t, "14 Westbourne Terrace", decoded.Addresses[0].Line1)
	})

	t.Run("rejects a missing term", func(t *testing.T) {
		mockProvider := new(MockAddressFinder)
		handler := handlers.NewAddressHandler(mockProvider)

		req := httptest.NewRequest("GET", "/api/addresses/lookup", nil)
		w := httptest.NewRecorder()

		handler.LookupAddresses(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockProvider.AssertNotCalled(t, "FindAddresses", mock.Anything, mock.Anything)
	})

	t.Run("degrades lookup failures to an empty list", func(t *testing.T) {
		mockProvider := new(MockAddressFinder)
		handler := handlers.NewAddressHandler(mockProvider)

		mockProvider.On("FindAddresses", mock.Anything, "W2 4UW").Return(nil, errors.New("connection refused"))

		req := httptest.NewRequest("GET", "/api/addresses/lookup?term=W2+4UW", nil)
		w := httptest.NewRecorder()

		handler.LookupAddresses(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decoded addressLookupResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
		assert.Equal(t, 0, decoded.Count)
		assert.Empty(t, decoded.Addresses)
	})

	t.Run("treats no matches as an empty list", func(t *testing.T) {
		mockProvider := new(MockAddressFinder)
		handler := handlers.NewAddressHandler(mockProvider)

		mockProvider.On("FindAddresses", mock.Anything, "ZZ9 9ZZ").Return([]entities.AddressCandidate{}, nil)

		req := httptest.NewRequest("GET", "/api/addresses/lookup?term=ZZ9+9ZZ", nil)
		w := httptest.NewRecorder()

		handler.LookupAddresses(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var decoded addressLookupResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
		assert.Equal(t, 0, decoded.Count)
	})
}
