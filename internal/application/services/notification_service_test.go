package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
)

// MockMessageSender defines a mock messaging gateway
type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func (m *MockMessageSender) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func testOffer() entities.OfferNotification {
	return entities.OfferNotification{
		Address:      "12 Porchester Gardens",
		PhoneNumber:  "07700900123",
		CustomerName: "Alex",
		MarketValue:  500000,
		Offer: entities.OfferDetails{
			OfferPrice:         425000,
			DiscountAmount:     75000,
			DiscountPercentage: 15,
		},
	}
}

func TestNotificationService_SendOffer(t *testing.T) {
	t.Run("sends on both channels", func(t *testing.T) {
		sender := new(MockMessageSender)
		svc := services.NewNotificationService(sender, nil)

		sender.On("SendSMS", mock.Anything, "+447700900123", mock.Anything).Return("SM123", nil)
		sender.On("SendWhatsApp", mock.Anything, "+447700900123", mock.Anything).Return("WA456", nil)

		result := svc.SendOffer(context.Background(), testOffer())

		assert.True(t, result.SMSSent)
		assert.True(t, result.WhatsAppSent)
		assert.Empty(t, result.Errors)
		sender.AssertExpectations(t)
	})

	t.Run("one channel failing does not affect the other", func(t *testing.T) {
		sender := new(MockMessageSender)
		svc := services.NewNotificationService(sender, nil)

		sender.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).
			Return("", &providers.GatewayError{Code: 21211, Status: 400, Message: "invalid number"})
		sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).Return("WA456", nil)

		result := svc.SendOffer(context.Background(), testOffer())

		assert.False(t, result.SMSSent)
		assert.True(t, result.WhatsAppSent)
		assert.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "SMS")
		assert.Contains(t, result.Errors[0], "invalid number")
	})

	t.Run("both channels failing collects both errors", func(t *testing.T) {
		sender := new(MockMessageSender)
		svc := services.NewNotificationService(sender, nil)

		sender.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).
			Return("", &providers.GatewayError{Code: 20003, Status: 401, Message: "authentication failed"})
		sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).
			Return("", &providers.GatewayError{Code: 63007, Status: 400, Message: "channel not found"})

		result := svc.SendOffer(context.Background(), testOffer())

		assert.False(t, result.SMSSent)
		assert.False(t, result.WhatsAppSent)
		assert.Len(t, result.Errors, 2)
	})

	t.Run("messages embed formatted prices", func(t *testing.T) {
		sender := new(MockMessageSender)
		svc := services.NewNotificationService(sender, nil)

		sender.On("SendSMS", mock.Anything, mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "£500,000") &&
				strings.Contains(body, "£425,000") &&
				strings.Contains(body, "12 Porchester Gardens")
		})).Return("SM123", nil)
		sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).Return("WA456", nil)

		result := svc.SendOffer(context.Background(), testOffer())
		assert.True(t, result.SMSSent)
		sender.AssertExpectations(t)
	})

	t.Run("unconfigured gateway reports an error without sending", func(t *testing.T) {
		svc := services.NewNotificationService(nil, nil)

		result := svc.SendOffer(context.Background(), testOffer())
		assert.False(t, result.SMSSent)
		assert.False(t, result.WhatsAppSent)
		assert.NotEmpty(t, result.Errors)
	})
}

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"07700 900123", "+447700900123"},
		{"+44 7700 900123", "+447700900123"},
		{"447700900123", "+447700900123"},
		{"7700900123", "+447700900123"},
		{"(07700) 900-123", "+447700900123"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, services.NormalizePhoneNumber(tt.input), tt.input)
	}
}

func TestFormatGBP(t *testing.T) {
	assert.Equal(t, "£0", services.FormatGBP(0))
	assert.Equal(t, "£950", services.FormatGBP(950))
	assert.Equal(t, "£1,000", services.FormatGBP(1000))
	assert.Equal(t, "£425,000", services.FormatGBP(425000))
	assert.Equal(t, "£1,234,567", services.FormatGBP(1234567))
}
