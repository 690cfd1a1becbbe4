package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// SumCompleted returns the total amount of the expert's completed bookings.
	SumCompleted(ctx context.Context, expertID int64) (decimal.Decimal, error)
	// SumRefunded returns the total amount of the expert's completed bookings
	// whose dispute resolved as refunded.
	SumRefunded(ctx context.Context, expertID int64) (decimal.Decimal, error)
	// ListFunding returns the expert's completed, non-refunded bookings ordered
	// by session start ascending, id ascending. This is the allocator's input
	// and the ordering must be stable across calls.
	ListFunding(ctx context.Context, expertID int64) ([]domain.Booking, error)

	// Guarded transitions. Each compares-and-swaps on the expected current
	// status and returns domain.ErrInvalidTransition when the row was not in it.
	Confirm(ctx context.Context, id int64, meetingURL string) error
	Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error
	Complete(ctx context.Context, id int64) error
}

type WithdrawalRepository interface {
	// CreateGuarded inserts a pending withdrawal after re-deriving the expert's
	// gross available balance inside the same transaction, under a per-expert
	// lock. Returns domain.ErrInsufficientFunds when the recheck fails, leaving
	// nothing written.
	CreateGuarded(ctx context.Context, w *domain.Withdrawal) error
	GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error)

	// ListActive returns the expert's non-rejected withdrawals ordered by
	// requested_at ascending, id ascending.
	ListActive(ctx context.Context, expertID int64) ([]domain.Withdrawal, error)
	// SumActive returns the total amount of the expert's non-rejected withdrawals.
	SumActive(ctx context.Context, expertID int64) (decimal.Decimal, error)

	// UpdateStatus compares-and-swaps the status and stores admin notes.
	// Returns domain.ErrInvalidTransition when the row was not in `from`.
	UpdateStatus(ctx context.Context, id int64, from, to domain.WithdrawalStatus, notes string) error
	// MarkPaid moves an approved withdrawal to paid, recording the transaction
	// reference and processing time. Same compare-and-swap contract.
	MarkPaid(ctx context.Context, id int64, transactionRef string) error
}

type DisputeRepository interface {
	Create(ctx context.Context, d *domain.Dispute) error
	GetByID(ctx context.Context, id int64) (*domain.Dispute, error)
	// CountByExpert counts disputes in any of the given statuses whose booking
	// belongs to the expert.
	CountByExpert(ctx context.Context, expertID int64, statuses ...domain.DisputeStatus) (int32, error)
}

type BankAccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BankAccount, error)
}

type SettingRepository interface {
	// Get returns the value of a platform setting, domain.ErrNotFound when the
	// key has never been set.
	Get(ctx context.Context, key string) (string, error)
}
