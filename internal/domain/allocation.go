package domain

import "github.com/shopspring/decimal"

// AllocationEntry attributes part of a withdrawal to one funding booking.
// AmountApplied may be less than the booking amount when the booking
// straddles the withdrawal boundary.
type AllocationEntry struct {
	BookingID     int64           `json:"booking_id"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
}

// Allocation explains which bookings' revenue a withdrawal represents,
// reconstructed on demand by the FIFO waterfall. Underfunded signals that the
// surviving booking pool no longer covers the withdrawal (historical data
// drift, typically a refund landing after the funds were claimed). It is a
// data-integrity signal for operators, not a failed operation.
type Allocation struct {
	WithdrawalID int64             `json:"withdrawal_id"`
	Entries      []AllocationEntry `json:"entries"`
	Underfunded  bool              `json:"underfunded"`
}
