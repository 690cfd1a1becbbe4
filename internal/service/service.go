package service

import (
	"context"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
)

type BalanceService interface {
	// AvailableBalance derives the expert's withdrawable position from
	// completed bookings, refunded disputes and in-flight withdrawals.
	// Read-only; an expert with no completed bookings gets a zero balance.
	AvailableBalance(ctx context.Context, expertID int64) (*domain.Balance, error)
	// CommissionRate resolves the platform commission rate in effect right now.
	CommissionRate(ctx context.Context) decimal.Decimal
}

type WithdrawalService interface {
	// Request validates and creates a pending withdrawal. The balance check and
	// the insert are atomic with respect to concurrent requests from the same
	// expert.
	Request(ctx context.Context, expertID int64, amount decimal.Decimal, bankAccountID int64) (*domain.Withdrawal, error)

	// Admin transitions. Non-admin actors get domain.ErrUnauthorized;
	// transitions not permitted by the state machine get
	// domain.ErrInvalidTransition.
	Approve(ctx context.Context, actor domain.Actor, id int64, notes string) (*domain.Withdrawal, error)
	Reject(ctx context.Context, actor domain.Actor, id int64, notes string) (*domain.Withdrawal, error)
	MarkPaid(ctx context.Context, actor domain.Actor, id int64, transactionRef string) (*domain.Withdrawal, error)
}

type LedgerService interface {
	// Allocate reconstructs, FIFO over the expert's funding bookings, which
	// revenue the withdrawal represents.
	Allocate(ctx context.Context, withdrawalID int64) (*domain.Allocation, error)
}

type RiskService interface {
	Risk(ctx context.Context, expertID int64) (*domain.RiskReport, error)
}

type BookingService interface {
	Create(ctx context.Context, b *domain.Booking) error
	Get(ctx context.Context, id int64) (*domain.Booking, error)

	// Confirm provisions a meeting room and moves pending → confirmed. A
	// provisioning failure aborts the transition.
	Confirm(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error)
	// Reject moves pending → cancelled (admin only).
	Reject(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Booking, error)
	// Cancel moves confirmed → cancelled, for the booking's client or an admin.
	Cancel(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Booking, error)
	// Complete moves confirmed → completed once the session end has passed.
	// Admin only; the scheduled sweep is the usual driver of this transition.
	Complete(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error)
}

type EmailService interface {
	// SendWithdrawalDecision notifies the finance mailbox of an admin decision.
	SendWithdrawalDecision(ctx context.Context, w *domain.Withdrawal) error
	// SendUnderfundedAlert notifies operators that a withdrawal's funding pool
	// no longer covers it.
	SendUnderfundedAlert(ctx context.Context, withdrawalID, expertID int64, shortfall decimal.Decimal) error
}
