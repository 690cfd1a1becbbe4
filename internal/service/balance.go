package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/logger"
	"expertdesk-backend/internal/repository"
)

// SettingCommissionRate is the platform_settings key holding the commission
// rate as a decimal fraction, e.g. "0.10".
const SettingCommissionRate = "commission_rate"

type balanceService struct {
	bookingRepo    repository.BookingRepository
	withdrawalRepo repository.WithdrawalRepository
	settingRepo    repository.SettingRepository
	defaultRate    decimal.Decimal
	currency       string
}

func NewBalanceService(
	bookingRepo repository.BookingRepository,
	withdrawalRepo repository.WithdrawalRepository,
	settingRepo repository.SettingRepository,
	defaultRate decimal.Decimal,
	currency string,
) BalanceService {
	return &balanceService{
		bookingRepo:    bookingRepo,
		withdrawalRepo: withdrawalRepo,
		settingRepo:    settingRepo,
		defaultRate:    defaultRate,
		currency:       currency,
	}
}

func (s *balanceService) AvailableBalance(ctx context.Context, expertID int64) (*domain.Balance, error) {
	completed, err := s.bookingRepo.SumCompleted(ctx, expertID)
	if err != nil {
		return nil, fmt.Errorf("sum completed bookings: %w", err)
	}
	refunded, err := s.bookingRepo.SumRefunded(ctx, expertID)
	if err != nil {
		return nil, fmt.Errorf("sum refunded bookings: %w", err)
	}
	claimed, err := s.withdrawalRepo.SumActive(ctx, expertID)
	if err != nil {
		return nil, fmt.Errorf("sum active withdrawals: %w", err)
	}

	// Refunds subtract even when the booking already funded a withdrawal, so
	// the raw figure can go negative before flooring.
	gross := completed.Sub(refunded).Sub(claimed)
	if gross.IsNegative() {
		gross = decimal.Zero
	}

	commission := gross.Mul(s.CommissionRate(ctx)).Round(2)
	return &domain.Balance{
		GrossAvailable:    gross,
		CommissionPortion: commission,
		NetAvailable:      gross.Sub(commission),
		Currency:          s.currency,
	}, nil
}

// CommissionRate reads the live settings row on every call; the rate is never
// cached so an admin change takes effect on the next computation.
func (s *balanceService) CommissionRate(ctx context.Context) decimal.Decimal {
	raw, err := s.settingRepo.Get(ctx, SettingCommissionRate)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Falling back to default commission rate", "error", err)
		}
		return s.defaultRate
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		logger.Warn("Ignoring malformed commission rate setting", "value", raw)
		return s.defaultRate
	}
	return rate
}
