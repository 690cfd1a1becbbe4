package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/logger"
	"expertdesk-backend/internal/repository"
)

const minTransactionRefLen = 3

type withdrawalService struct {
	withdrawalRepo repository.WithdrawalRepository
	bankRepo       repository.BankAccountRepository
	balanceSvc     BalanceService
	emailSvc       EmailService
	minWithdrawal  decimal.Decimal
	currency       string
}

func NewWithdrawalService(
	withdrawalRepo repository.WithdrawalRepository,
	bankRepo repository.BankAccountRepository,
	balanceSvc BalanceService,
	emailSvc EmailService,
	minWithdrawal decimal.Decimal,
	currency string,
) WithdrawalService {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		bankRepo:       bankRepo,
		balanceSvc:     balanceSvc,
		emailSvc:       emailSvc,
		minWithdrawal:  minWithdrawal,
		currency:       currency,
	}
}

func (s *withdrawalService) Request(ctx context.Context, expertID int64, amount decimal.Decimal, bankAccountID int64) (*domain.Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, domain.ErrBelowMinimum
	}

	bal, err := s.balanceSvc.AvailableBalance(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(bal.GrossAvailable) {
		return nil, domain.ErrInsufficientFunds
	}

	bank, err := s.bankRepo.GetByID(ctx, bankAccountID)
	if err != nil {
		return nil, domain.ErrInvalidDestination
	}
	if bank.UserID != expertID {
		return nil, domain.ErrInvalidDestination
	}

	w := &domain.Withdrawal{
		ExpertID:              expertID,
		Amount:                amount,
		Currency:              s.currency,
		Status:                domain.WithdrawalStatusPending,
		RequestedAt:           time.Now().UTC(),
		BankSnapshot:          bank.Snapshot(),
		CommissionRateApplied: s.balanceSvc.CommissionRate(ctx),
	}

	// The repository re-derives the balance inside its transaction, so a
	// concurrent request that won the race surfaces here as insufficient funds.
	if err := s.withdrawalRepo.CreateGuarded(ctx, w); err != nil {
		return nil, err
	}

	logger.Info("Withdrawal requested", "withdrawal_id", w.ID, "expert_id", expertID, "amount", amount)
	return w, nil
}

func (s *withdrawalService) Approve(ctx context.Context, actor domain.Actor, id int64, notes string) (*domain.Withdrawal, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	w, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Status != domain.WithdrawalStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	// The update re-checks the status, so a concurrent transition after the
	// read above still cannot double-approve.
	if err := s.withdrawalRepo.UpdateStatus(ctx, id, domain.WithdrawalStatusPending, domain.WithdrawalStatusApproved, notes); err != nil {
		return nil, err
	}
	w.Status = domain.WithdrawalStatusApproved
	w.AdminNotes = notes
	s.notify(ctx, w)
	return w, nil
}

func (s *withdrawalService) Reject(ctx context.Context, actor domain.Actor, id int64, notes string) (*domain.Withdrawal, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	w, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Reversal is still permitted after approval, but not once paid.
	if w.Status != domain.WithdrawalStatusPending && w.Status != domain.WithdrawalStatusApproved {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.withdrawalRepo.UpdateStatus(ctx, id, w.Status, domain.WithdrawalStatusRejected, notes); err != nil {
		return nil, err
	}
	w.Status = domain.WithdrawalStatusRejected
	w.AdminNotes = notes
	s.notify(ctx, w)
	return w, nil
}

func (s *withdrawalService) MarkPaid(ctx context.Context, actor domain.Actor, id int64, transactionRef string) (*domain.Withdrawal, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	ref := strings.TrimSpace(transactionRef)
	if len(ref) < minTransactionRefLen {
		return nil, domain.ErrInvalidReference
	}
	w, err := s.withdrawalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Compare-and-swap from approved: repeating MarkPaid on a paid record
	// fails rather than silently succeeding, so the payout is booked once.
	if err := s.withdrawalRepo.MarkPaid(ctx, id, ref); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	w.Status = domain.WithdrawalStatusPaid
	w.TransactionRef = ref
	w.ProcessedAt = &now
	logger.Info("Withdrawal settled", "withdrawal_id", id, "transaction_ref", ref)
	s.notify(ctx, w)
	return w, nil
}

func (s *withdrawalService) notify(ctx context.Context, w *domain.Withdrawal) {
	if s.emailSvc == nil {
		return
	}
	if err := s.emailSvc.SendWithdrawalDecision(ctx, w); err != nil {
		logger.Warn(fmt.Sprintf("Failed to send withdrawal %s notification", w.Status), "withdrawal_id", w.ID, "error", err)
	}
}
