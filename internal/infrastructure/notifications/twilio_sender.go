package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
)

// TwilioSender sends SMS and WhatsApp messages via the Twilio REST API
type TwilioSender struct {
	accountSID     string
	authToken      string
	smsNumber      string
	whatsappNumber string
	httpClient     *http.Client
	baseURL        string
}

// NewTwilioSender creates a new Twilio sender
func NewTwilioSender(cfg *config.TwilioConfig) (*TwilioSender, error) {
	if cfg == nil || cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set")
	}

	return &TwilioSender{
		accountSID:     cfg.AccountSID,
		authToken:      cfg.AuthToken,
		smsNumber:      cfg.SMSNumber,
		whatsappNumber: cfg.WhatsAppNumber,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.twilio.com/2010-04-01",
	}, nil
}

// SetBaseURL overrides the API base URL (used for tests).
func (t *TwilioSender) SetBaseURL(baseURL string) {
	if strings.TrimSpace(baseURL) != "" {
		t.baseURL = baseURL
	}
}

// twilioMessageResponse represents the API response for a created message
type twilioMessageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// twilioErrorResponse represents the API error payload
type twilioErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

// SendSMS sends a plain SMS message
func (t *TwilioSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	return t.sendMessage(ctx, t.smsNumber, to, body)
}

// SendWhatsApp sends a WhatsApp message using Twilio's whatsapp: addressing
func (t *TwilioSender) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	return t.sendMessage(ctx, "whatsapp:"+t.whatsappNumber, "whatsapp:"+to, body)
}

// sendMessage posts a message to the Twilio Messages resource
func (t *TwilioSender) sendMessage(ctx context.Context, from, to, body string) (string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr twilioErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return "", &providers.GatewayError{
				Code:     apiErr.Code,
				Status:   apiErr.Status,
				Message:  apiErr.Message,
				MoreInfo: apiErr.MoreInfo,
			}
		}
		return "", fmt.Errorf("twilio API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var message twilioMessageResponse
	if err := json.Unmarshal(respBody, &message); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if message.SID == "" {
		return "", fmt.Errorf("no message SID in response")
	}

	return message.SID, nil
}
