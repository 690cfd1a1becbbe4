package domain

import "time"

type DisputeStatus string

const (
	DisputeStatusOpen              DisputeStatus = "open"
	DisputeStatusUnderReview       DisputeStatus = "under_review"
	DisputeStatusResolvedRefunded  DisputeStatus = "resolved_refunded"
	DisputeStatusResolvedDismissed DisputeStatus = "resolved_dismissed"
)

// Dispute is a client-raised challenge against a specific booking.
// resolved_refunded permanently removes the booking's amount from the
// expert's earned pool.
type Dispute struct {
	ID         int64         `json:"id"`
	BookingID  int64         `json:"booking_id"`
	Status     DisputeStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
}

// RiskReport is the advisory fraud signal derived from an expert's dispute
// history. It never blocks a withdrawal by itself; operators decide.
type RiskReport struct {
	OpenDisputes int32 `json:"open_disputes"`
	LostDisputes int32 `json:"lost_disputes"`
	FraudFlag    bool  `json:"fraud_flag"`
}
