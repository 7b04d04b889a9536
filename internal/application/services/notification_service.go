package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
)

// NotificationService dispatches offer messages over SMS and WhatsApp.
// Channel failures are absorbed into the result; they never propagate.
type NotificationService struct {
	sender providers.MessageSender
	db     *sqlx.DB
}

// NewNotificationService creates a notification service. db may be nil;
// delivery logging is then skipped.
func NewNotificationService(sender providers.MessageSender, db *sqlx.DB) *NotificationService {
	return &NotificationService{sender: sender, db: db}
}

// SendOffer delivers the offer on both channels concurrently and reports
// per-channel outcomes. Total latency is the slower channel, not the sum.
func (s *NotificationService) SendOffer(ctx context.Context, offer entities.OfferNotification) entities.NotificationResult {
	result := entities.NotificationResult{}
	if s.sender == nil {
		result.Errors = append(result.Errors, "messaging gateway is not configured")
		return result
	}

	to := NormalizePhoneNumber(offer.PhoneNumber)
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		smsErr      error
		whatsAppErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sid, err := s.sender.SendSMS(ctx, to, buildSMSBody(offer))
		mu.Lock()
		defer mu.Unlock()
		result.SMSSent = err == nil
		smsErr = err
		s.logDelivery(ctx, entities.ChannelSMS, to, sid, err)
	}()
	go func() {
		defer wg.Done()
		sid, err := s.sender.SendWhatsApp(ctx, to, buildWhatsAppBody(offer))
		mu.Lock()
		defer mu.Unlock()
		result.WhatsAppSent = err == nil
		whatsAppErr = err
		s.logDelivery(ctx, entities.ChannelWhatsApp, to, sid, err)
	}()
	wg.Wait()

	if smsErr != nil {
		result.Errors = append(result.Errors, "SMS: "+channelErrorMessage(smsErr))
	}
	if whatsAppErr != nil {
		result.Errors = append(result.Errors, "WhatsApp: "+channelErrorMessage(whatsAppErr))
	}
	return result
}

// logDelivery writes a best-effort delivery log row. Failures are logged
// and swallowed.
func (s *NotificationService) logDelivery(ctx context.Context, channel entities.NotificationChannel, recipient, sid string, sendErr error) {
	logger := observability.LoggerFromContext(ctx)

	var gatewayErr *providers.GatewayError
	if sendErr != nil {
		event := logger.Warn().Err(sendErr).Str("channel", string(channel))
		if errors.As(sendErr, &gatewayErr) {
			event = event.Int("code", gatewayErr.Code).
				Int("status", gatewayErr.Status).
				Str("more_info", gatewayErr.MoreInfo)
		}
		event.Msg("notification send failed")
	} else {
		logger.Info().Str("channel", string(channel)).Str("sid", sid).Msg("notification sent")
	}

	if s.db == nil {
		return
	}

	row := entities.MessageNotification{
		ID:        uuid.New().String(),
		Channel:   channel,
		Recipient: recipient,
		Status:    entities.NotificationStatusSent,
		CreatedAt: time.Now().UTC(),
	}
	if sid != "" {
		row.MessageSID = &sid
	}
	if sendErr != nil {
		row.Status = entities.NotificationStatusFailed
		msg := sendErr.Error()
		row.ErrorMessage = &msg
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO message_notifications (id, channel, recipient, status, message_sid, error_message, created_at)
		VALUES (:id, :channel, :recipient, :status, :message_sid, :error_message, :created_at)`, row)
	if err != nil {
		logger.Warn().Err(err).Str("channel", string(channel)).Msg("failed to record notification delivery")
	}
}

// NormalizePhoneNumber converts UK numbers to E.164. A leading 0 becomes
// +44; numbers already starting 44 just gain the plus.
func NormalizePhoneNumber(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case d == "":
		return ""
	case strings.HasPrefix(d, "0"):
		return "+44" + d[1:]
	case strings.HasPrefix(d, "44"):
		return "+" + d
	default:
		return "+44" + d
	}
}

func buildSMSBody(offer entities.OfferNotification) string {
	return fmt.Sprintf(
		"Hi %s, your valuation for %s is ready. Estimated market value: %s. Our cash offer: %s (%d%% below market, %s). Call us to proceed or reply STOP to opt out.",
		greetingName(offer.CustomerName),
		offer.Address,
		FormatGBP(offer.MarketValue),
		FormatGBP(offer.Offer.OfferPrice),
		offer.Offer.DiscountPercentage,
		FormatGBP(offer.Offer.DiscountAmount),
	)
}

func buildWhatsAppBody(offer entities.OfferNotification) string {
	return fmt.Sprintf(
		"Hi %s! 🏠 Your property valuation for *%s* is ready.\n\nEstimated market value: *%s*\nOur guaranteed cash offer: *%s*\n(%d%% discount, %s)\n\nNo chains, no fees, completion on your timeline. Reply here or call us to take the next step.",
		greetingName(offer.CustomerName),
		offer.Address,
		FormatGBP(offer.MarketValue),
		FormatGBP(offer.Offer.OfferPrice),
		offer.Offer.DiscountPercentage,
		FormatGBP(offer.Offer.DiscountAmount),
	)
}

func greetingName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "there"
	}
	return strings.TrimSpace(name)
}

func channelErrorMessage(err error) string {
	var gatewayErr *providers.GatewayError
	if errors.As(err, &gatewayErr) {
		return gatewayErr.Message
	}
	return err.Error()
}

// FormatGBP renders whole pounds with thousands separators, e.g. £425,000.
func FormatGBP(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-£" + b.String()
	}
	return "£" + b.String()
}
