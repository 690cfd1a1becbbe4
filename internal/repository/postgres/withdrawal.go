package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository"
)

type withdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) repository.WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

const withdrawalColumns = `id, expert_id, amount, currency, status, requested_at, processed_at, COALESCE(transaction_ref, ''), COALESCE(admin_notes, ''), bank, account_type, account_number, holder_name, document_id, commission_rate_applied`

func scanWithdrawal(row interface{ Scan(...any) error }) (*domain.Withdrawal, error) {
	w := &domain.Withdrawal{}
	err := row.Scan(&w.ID, &w.ExpertID, &w.Amount, &w.Currency, &w.Status,
		&w.RequestedAt, &w.ProcessedAt, &w.TransactionRef, &w.AdminNotes,
		&w.BankSnapshot.Bank, &w.BankSnapshot.AccountType, &w.BankSnapshot.AccountNumber,
		&w.BankSnapshot.HolderName, &w.BankSnapshot.DocumentID, &w.CommissionRateApplied)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// CreateGuarded inserts a pending withdrawal after re-deriving gross available
// inside one transaction, serialized per expert with an advisory lock. Two
// concurrent requests for the same expert therefore cannot both pass the
// balance check against the same funds.
func (r *withdrawalRepository) CreateGuarded(ctx context.Context, w *domain.Withdrawal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin withdrawal transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, w.ExpertID); err != nil {
		return fmt.Errorf("acquire expert lock: %w", err)
	}

	gross, err := grossAvailableTx(ctx, tx, w.ExpertID)
	if err != nil {
		return fmt.Errorf("recheck balance: %w", err)
	}
	if w.Amount.GreaterThan(gross) {
		return domain.ErrInsufficientFunds
	}

	query := `INSERT INTO withdrawals (expert_id, amount, currency, status, requested_at, bank, account_type, account_number, holder_name, document_id, commission_rate_applied)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, query, w.ExpertID, w.Amount, w.Currency, w.Status,
		w.RequestedAt, w.BankSnapshot.Bank, w.BankSnapshot.AccountType,
		w.BankSnapshot.AccountNumber, w.BankSnapshot.HolderName, w.BankSnapshot.DocumentID,
		w.CommissionRateApplied).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}

	return tx.Commit()
}

// grossAvailableTx computes completed − refunded − non-rejected withdrawals,
// floored at zero, using the transaction's snapshot.
func grossAvailableTx(ctx context.Context, tx *sql.Tx, expertID int64) (decimal.Decimal, error) {
	var completed, refunded, claimed decimal.Decimal

	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE expert_id = $1 AND status = 'completed'`,
		expertID).Scan(&completed)
	if err != nil {
		return decimal.Zero, err
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(b.amount), 0) FROM bookings b
		 JOIN disputes d ON d.booking_id = b.id AND d.status = 'resolved_refunded'
		 WHERE b.expert_id = $1 AND b.status = 'completed'`,
		expertID).Scan(&refunded)
	if err != nil {
		return decimal.Zero, err
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE expert_id = $1 AND status <> 'rejected'`,
		expertID).Scan(&claimed)
	if err != nil {
		return decimal.Zero, err
	}

	gross := completed.Sub(refunded).Sub(claimed)
	if gross.IsNegative() {
		gross = decimal.Zero
	}
	return gross, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	w, err := scanWithdrawal(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return w, err
}

func (r *withdrawalRepository) ListActive(ctx context.Context, expertID int64) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals
	          WHERE expert_id = $1 AND status <> 'rejected'
	          ORDER BY requested_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, expertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}

func (r *withdrawalRepository) SumActive(ctx context.Context, expertID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE expert_id = $1 AND status <> 'rejected'`
	err := r.db.QueryRowContext(ctx, query, expertID).Scan(&sum)
	return sum, err
}

func (r *withdrawalRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.WithdrawalStatus, notes string) error {
	query := `UPDATE withdrawals SET status = $3, admin_notes = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to, notes)
	if err != nil {
		return err
	}
	return casResult(res)
}

func (r *withdrawalRepository) MarkPaid(ctx context.Context, id int64, transactionRef string) error {
	query := `UPDATE withdrawals SET status = 'paid', transaction_ref = $2, processed_at = NOW() WHERE id = $1 AND status = 'approved'`
	res, err := r.db.ExecContext(ctx, query, id, transactionRef)
	if err != nil {
		return err
	}
	return casResult(res)
}

func casResult(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
