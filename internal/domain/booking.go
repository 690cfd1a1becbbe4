package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is one paid engagement between a client and an expert.
// A booking contributes to the expert's earned revenue iff its status is completed.
type Booking struct {
	ID           int64           `json:"id"`
	ExpertID     int64           `json:"expert_id"`
	UserID       int64           `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       BookingStatus   `json:"status"`
	SessionStart time.Time       `json:"session_start"`
	SessionEnd   time.Time       `json:"session_end"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"` // set only while pending
	MeetingURL   string          `json:"meeting_url,omitempty"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
