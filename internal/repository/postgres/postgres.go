package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"expertdesk-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.WithdrawalRepository
	repository.DisputeRepository
	repository.BankAccountRepository
	repository.SettingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		BookingRepository:     NewBookingRepository(db),
		WithdrawalRepository:  NewWithdrawalRepository(db),
		DisputeRepository:     NewDisputeRepository(db),
		BankAccountRepository: NewBankAccountRepository(db),
		SettingRepository:     NewSettingRepository(db),
	}
}
