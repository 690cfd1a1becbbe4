package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/logger"
	"expertdesk-backend/internal/repository"
)

type ledgerService struct {
	withdrawalRepo repository.WithdrawalRepository
	bookingRepo    repository.BookingRepository
	emailSvc       EmailService
}

func NewLedgerService(
	withdrawalRepo repository.WithdrawalRepository,
	bookingRepo repository.BookingRepository,
	emailSvc EmailService,
) LedgerService {
	return &ledgerService{
		withdrawalRepo: withdrawalRepo,
		bookingRepo:    bookingRepo,
		emailSvc:       emailSvc,
	}
}

// Allocate replays the FIFO waterfall: earlier withdrawals consume the oldest
// funding bookings first, and the target withdrawal is attributed whatever the
// waterfall reaches next. Nothing is persisted; repeated calls over unchanged
// data reconstruct identical results, including partial boundaries.
func (s *ledgerService) Allocate(ctx context.Context, withdrawalID int64) (*domain.Allocation, error) {
	target, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	// A rejected withdrawal never claimed funds; its allocation is empty.
	if target.Status == domain.WithdrawalStatusRejected {
		return &domain.Allocation{WithdrawalID: withdrawalID}, nil
	}

	bookings, err := s.bookingRepo.ListFunding(ctx, target.ExpertID)
	if err != nil {
		return nil, fmt.Errorf("list funding bookings: %w", err)
	}
	withdrawals, err := s.withdrawalRepo.ListActive(ctx, target.ExpertID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}

	// Funds consumed by withdrawals strictly earlier than the target, with id
	// as the deterministic tie-break on equal request times.
	consumed := decimal.Zero
	for _, w := range withdrawals {
		if w.RequestedAt.Before(target.RequestedAt) ||
			(w.RequestedAt.Equal(target.RequestedAt) && w.ID < target.ID) {
			consumed = consumed.Add(w.Amount)
		}
	}

	alloc := &domain.Allocation{WithdrawalID: withdrawalID}
	remaining := target.Amount
	for _, b := range bookings {
		available := b.Amount
		if consumed.IsPositive() {
			used := decimal.Min(consumed, available)
			consumed = consumed.Sub(used)
			available = available.Sub(used)
			if available.IsZero() {
				continue
			}
		}
		applied := decimal.Min(remaining, available)
		alloc.Entries = append(alloc.Entries, domain.AllocationEntry{
			BookingID:     b.ID,
			AmountApplied: applied,
		})
		remaining = remaining.Sub(applied)
		if !remaining.IsPositive() {
			break
		}
	}

	if remaining.IsPositive() {
		// Historical drift: a refund removed revenue this withdrawal had
		// already drawn on. Surfaced to operators, not returned as an error.
		alloc.Underfunded = true
		logger.Error("Withdrawal underfunded",
			"withdrawal_id", target.ID, "expert_id", target.ExpertID, "shortfall", remaining)
		if s.emailSvc != nil {
			if err := s.emailSvc.SendUnderfundedAlert(ctx, target.ID, target.ExpertID, remaining); err != nil {
				logger.Warn("Failed to send underfunded alert", "withdrawal_id", target.ID, "error", err)
			}
		}
	}

	return alloc, nil
}
