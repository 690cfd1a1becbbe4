package postgres

import (
	"context"
	"database/sql"
	"errors"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository"
)

type bankAccountRepository struct {
	db *sql.DB
}

func NewBankAccountRepository(db *sql.DB) repository.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) GetByID(ctx context.Context, id int64) (*domain.BankAccount, error) {
	b := &domain.BankAccount{}
	query := `SELECT id, user_id, bank, account_type, account_number, holder_name, document_id, created_at
	          FROM bank_accounts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.UserID, &b.Bank,
		&b.AccountType, &b.AccountNumber, &b.HolderName, &b.DocumentID, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
