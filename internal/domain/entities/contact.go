package entities

import (
	"time"
)

// Contact represents a lead captured through the valuation funnel
type Contact struct {
	ID          string    `json:"id" db:"id"`
	FullName    string    `json:"fullName" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	InquiryType string    `json:"inquiryType" db:"inquiry_type"`
	Timeframe   string    `json:"timeframe" db:"timeframe"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
