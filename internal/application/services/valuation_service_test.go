package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	apperrors "github.com/S3nssay/catwalkframes-sub000/pkg/errors"
)

// MockPropertyRepository defines a mock property store
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *entities.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, limit, offset int) ([]*entities.Property, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Property), args.Error(1)
}

// MockContactRepository defines a mock contact store
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *entities.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) GetByID(ctx context.Context, id string) (*entities.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

// MockValuationRepository defines a mock valuation store
type MockValuationRepository struct {
	mock.Mock
}

func (m *MockValuationRepository) Create(ctx context.Context, valuation *entities.Valuation) error {
	args := m.Called(ctx, valuation)
	return args.Error(0)
}

func (m *MockValuationRepository) GetByID(ctx context.Context, id string) (*entities.Valuation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Valuation), args.Error(1)
}

type valuationFixture struct {
	postcodes  *MockPostcodeProvider
	index      *MockPriceIndexProvider
	sender     *MockMessageSender
	properties *MockPropertyRepository
	contacts   *MockContactRepository
	valuations *MockValuationRepository
	service    *services.ValuationService
}

func newValuationFixture() *valuationFixture {
	f := &valuationFixture{
		postcodes:  new(MockPostcodeProvider),
		index:      new(MockPriceIndexProvider),
		sender:     new(MockMessageSender),
		properties: new(MockPropertyRepository),
		contacts:   new(MockContactRepository),
		valuations: new(MockValuationRepository),
	}
	f.service = services.NewValuationService(
		services.NewPostcodeService(f.postcodes),
		services.NewPricingService(f.postcodes, f.index),
		services.NewNotificationService(f.sender, nil),
		f.properties,
		f.contacts,
		f.valuations,
	)
	return f
}

func validRequest() services.ValuationRequest {
	return services.ValuationRequest{
		Postcode:     "W2 4UW",
		AddressLine1: "12 Porchester Gardens",
		PropertyType: entities.PropertyTypeFlat,
		Bedrooms:     2,
		FullName:     "Alex Morgan",
		Email:        "alex@example.com",
		Phone:        "07700900123",
	}
}

func TestValuationService_ProcessValuation(t *testing.T) {
	t.Run("happy path persists and notifies", func(t *testing.T) {
		f := newValuationFixture()

		f.postcodes.On("Lookup", mock.Anything, "W2 4UW").Return(&providers.PostcodeRecord{
			Postcode:      "W2 4UW",
			Region:        "London",
			AdminDistrict: "Westminster",
		}, nil)
		f.index.On("LatestIndex", mock.Anything, "London", mock.Anything).Return(&providers.PriceIndexPoint{
			AveragePrice: 500000,
			SalesVolume:  80,
		}, nil)
		f.properties.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.contacts.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.valuations.On("Create", mock.Anything, mock.MatchedBy(func(v *entities.Valuation) bool {
			return v.ContactID != "" && v.Postcode == "W2 4UW" && v.EstimatedValue > 0
		})).Return(nil)
		f.sender.On("SendSMS", mock.Anything, "+447700900123", mock.Anything).Return("SM1", nil)
		f.sender.On("SendWhatsApp", mock.Anything, "+447700900123", mock.Anything).Return("WA1", nil)

		resp, err := f.service.ProcessValuation(context.Background(), validRequest())

		require.NoError(t, err)
		assert.True(t, resp.Success)
		// 500000 * 0.9 (flat) * 0.9 (2 beds)
		assert.Equal(t, 405000, resp.PriceInfo.AveragePrice)
		assert.Equal(t, resp.PriceInfo.AveragePrice, resp.OfferDetails.OfferPrice+resp.OfferDetails.DiscountAmount)
		assert.True(t, resp.Notifications.SMSSent)
		assert.True(t, resp.Notifications.WhatsAppSent)
		f.valuations.AssertExpectations(t)
	})

	t.Run("invalid postcode rejects the request", func(t *testing.T) {
		f := newValuationFixture()

		req := validRequest()
		req.Postcode = "NOT A POSTCODE"

		_, err := f.service.ProcessValuation(context.Background(), req)

		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("unknown postcode rejects the request", func(t *testing.T) {
		f := newValuationFixture()

		f.postcodes.On("Lookup", mock.Anything, mock.Anything).Return(nil, providers.ErrPostcodeNotFound)

		_, err := f.service.ProcessValuation(context.Background(), validRequest())
		require.Error(t, err)
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		f := newValuationFixture()

		req := validRequest()
		req.Phone = ""

		_, err := f.service.ProcessValuation(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("zero bedrooms is rejected before any lookup", func(t *testing.T) {
		f := newValuationFixture()

		req := validRequest()
		req.Bedrooms = 0

		_, err := f.service.ProcessValuation(context.Background(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bedrooms")

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		f.postcodes.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("succeeds with every downstream collaborator failing", func(t *testing.T) {
		f := newValuationFixture()

		// Postcode validates, then everything else falls over.
		f.postcodes.On("Lookup", mock.Anything, "W2 4UW").Return(&providers.PostcodeRecord{
			Postcode: "W2 4UW",
		}, nil).Once()
		f.postcodes.On("Lookup", mock.Anything, mock.Anything).Return(nil, errors.New("service down"))
		f.index.On("LatestIndex", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("service down"))
		f.properties.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.contacts.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.sender.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("gateway down"))
		f.sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("gateway down"))

		resp, err := f.service.ProcessValuation(context.Background(), validRequest())

		require.NoError(t, err)
		assert.True(t, resp.Success)
		// Hardcoded flat base 210000 * 0.9 for 2 beds
		assert.Equal(t, 189000, resp.PriceInfo.AveragePrice)
		assert.False(t, resp.Notifications.SMSSent)
		assert.False(t, resp.Notifications.WhatsAppSent)
		assert.Len(t, resp.Notifications.Errors, 2)
	})

	t.Run("persistence failure does not skip notification", func(t *testing.T) {
		f := newValuationFixture()

		f.postcodes.On("Lookup", mock.Anything, mock.Anything).Return(&providers.PostcodeRecord{
			Postcode: "W2 4UW",
			Region:   "London",
		}, nil)
		f.index.On("LatestIndex", mock.Anything, "London", mock.Anything).Return(&providers.PriceIndexPoint{
			AveragePrice: 400000,
			SalesVolume:  20,
		}, nil)
		f.properties.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.contacts.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.sender.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return("SM1", nil)
		f.sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).Return("WA1", nil)

		resp, err := f.service.ProcessValuation(context.Background(), validRequest())

		require.NoError(t, err)
		assert.True(t, resp.Notifications.SMSSent)
		assert.True(t, resp.Notifications.WhatsAppSent)
		// Valuation row needs a contact, so its Create is never attempted.
		f.valuations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestValuationService_RecordValuation(t *testing.T) {
	t.Run("persists and notifies with supplied figures", func(t *testing.T) {
		f := newValuationFixture()

		f.postcodes.On("Lookup", mock.Anything, mock.Anything).Return(&providers.PostcodeRecord{
			Postcode: "W2 4UW",
		}, nil)
		f.properties.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.contacts.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.valuations.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.sender.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return("SM1", nil)
		f.sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).Return("WA1", nil)

		estimate := &entities.PropertyPriceEstimate{AveragePrice: 450000, MinPrice: 405000, MaxPrice: 495000}
		offer := services.CalculateOffer(450000)

		resp, err := f.service.RecordValuation(context.Background(), validRequest(), estimate, offer)

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, estimate, resp.PriceInfo)
		f.index.AssertNotCalled(t, "LatestIndex", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing estimate", func(t *testing.T) {
		f := newValuationFixture()

		_, err := f.service.RecordValuation(context.Background(), validRequest(), nil, entities.OfferDetails{})
		require.Error(t, err)
	})
}
