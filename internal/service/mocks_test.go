package service_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/meeting"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) SumCompleted(ctx context.Context, expertID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, expertID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBookingRepo) SumRefunded(ctx context.Context, expertID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, expertID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBookingRepo) ListFunding(ctx context.Context, expertID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, expertID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Confirm(ctx context.Context, id int64, meetingURL string) error {
	args := m.Called(ctx, id, meetingURL)
	return args.Error(0)
}
func (m *MockBookingRepo) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error {
	args := m.Called(ctx, id, from, reason)
	return args.Error(0)
}
func (m *MockBookingRepo) Complete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWithdrawalRepo
type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) CreateGuarded(ctx context.Context, w *domain.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) ListActive(ctx context.Context, expertID int64) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, expertID)
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) SumActive(ctx context.Context, expertID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, expertID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockWithdrawalRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.WithdrawalStatus, notes string) error {
	args := m.Called(ctx, id, from, to, notes)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) MarkPaid(ctx context.Context, id int64, transactionRef string) error {
	args := m.Called(ctx, id, transactionRef)
	return args.Error(0)
}

// MockDisputeRepo
type MockDisputeRepo struct {
	mock.Mock
}

func (m *MockDisputeRepo) Create(ctx context.Context, d *domain.Dispute) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDisputeRepo) GetByID(ctx context.Context, id int64) (*domain.Dispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dispute), args.Error(1)
}
func (m *MockDisputeRepo) CountByExpert(ctx context.Context, expertID int64, statuses ...domain.DisputeStatus) (int32, error) {
	args := m.Called(ctx, expertID, statuses)
	return args.Get(0).(int32), args.Error(1)
}

// MockBankAccountRepo
type MockBankAccountRepo struct {
	mock.Mock
}

func (m *MockBankAccountRepo) GetByID(ctx context.Context, id int64) (*domain.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

// MockSettingRepo
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// MockBalanceService
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) AvailableBalance(ctx context.Context, expertID int64) (*domain.Balance, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}
func (m *MockBalanceService) CommissionRate(ctx context.Context) decimal.Decimal {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWithdrawalDecision(ctx context.Context, w *domain.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockEmailService) SendUnderfundedAlert(ctx context.Context, withdrawalID, expertID int64, shortfall decimal.Decimal) error {
	args := m.Called(ctx, withdrawalID, expertID, shortfall)
	return args.Error(0)
}

// MockRoomProvisioner
type MockRoomProvisioner struct {
	mock.Mock
}

func (m *MockRoomProvisioner) CreateRoom(ctx context.Context, b *domain.Booking) (*meeting.Room, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meeting.Room), args.Error(1)
}
func (m *MockRoomProvisioner) DeleteRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}
