package entities

import (
	"time"
)

// NotificationChannel identifies a delivery channel
type NotificationChannel string

const (
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// NotificationStatus represents delivery state of a message record
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationResult aggregates per-channel delivery outcomes for one
// request/response cycle. It is never persisted.
type NotificationResult struct {
	SMSSent      bool     `json:"sms"`
	WhatsAppSent bool     `json:"whatsapp"`
	Errors       []string `json:"errors,omitempty"`
}

// OfferNotification carries everything needed to format an offer message.
type OfferNotification struct {
	Address      string
	PhoneNumber  string
	CustomerName string
	MarketValue  int
	Offer        OfferDetails
}

// MessageNotification is the best-effort delivery log row for one channel
// attempt.
type MessageNotification struct {
	ID           string              `json:"id" db:"id"`
	Channel      NotificationChannel `json:"channel" db:"channel"`
	Recipient    string              `json:"recipient" db:"recipient"`
	Status       NotificationStatus  `json:"status" db:"status"`
	MessageSID   *string             `json:"messageSid,omitempty" db:"message_sid"`
	ErrorMessage *string             `json:"errorMessage,omitempty" db:"error_message"`
	CreatedAt    time.Time           `json:"createdAt" db:"created_at"`
}
