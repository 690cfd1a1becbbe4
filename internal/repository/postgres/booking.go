package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, expert_id, user_id, amount, currency, status, session_start, session_end, expires_at, COALESCE(meeting_url, ''), COALESCE(cancel_reason, ''), created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.ExpertID, &b.UserID, &b.Amount, &b.Currency, &b.Status,
		&b.SessionStart, &b.SessionEnd, &b.ExpiresAt, &b.MeetingURL, &b.CancelReason,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (expert_id, user_id, amount, currency, status, session_start, session_end, expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.ExpertID, b.UserID, b.Amount, b.Currency,
		b.Status, b.SessionStart, b.SessionEnd, b.ExpiresAt).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) SumCompleted(ctx context.Context, expertID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE expert_id = $1 AND status = 'completed'`
	err := r.db.QueryRowContext(ctx, query, expertID).Scan(&sum)
	return sum, err
}

func (r *bookingRepository) SumRefunded(ctx context.Context, expertID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(b.amount), 0) FROM bookings b
	          JOIN disputes d ON d.booking_id = b.id AND d.status = 'resolved_refunded'
	          WHERE b.expert_id = $1 AND b.status = 'completed'`
	err := r.db.QueryRowContext(ctx, query, expertID).Scan(&sum)
	return sum, err
}

func (r *bookingRepository) ListFunding(ctx context.Context, expertID int64) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          WHERE b.expert_id = $1 AND b.status = 'completed'
	            AND NOT EXISTS (SELECT 1 FROM disputes d WHERE d.booking_id = b.id AND d.status = 'resolved_refunded')
	          ORDER BY b.session_start ASC, b.id ASC`
	rows, err := r.db.QueryContext(ctx, query, expertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Confirm(ctx context.Context, id int64, meetingURL string) error {
	query := `UPDATE bookings SET status = 'confirmed', meeting_url = $2, expires_at = NULL, updated_at = NOW()
	          WHERE id = $1 AND status = 'pending'`
	return r.casExec(ctx, query, id, meetingURL)
}

func (r *bookingRepository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error {
	query := `UPDATE bookings SET status = 'cancelled', cancel_reason = $3, expires_at = NULL, updated_at = NOW()
	          WHERE id = $1 AND status = $2`
	return r.casExec(ctx, query, id, from, reason)
}

func (r *bookingRepository) Complete(ctx context.Context, id int64) error {
	query := `UPDATE bookings SET status = 'completed', updated_at = NOW()
	          WHERE id = $1 AND status = 'confirmed' AND session_end <= $2`
	return r.casExec(ctx, query, id, time.Now().UTC())
}

// casExec runs a compare-and-swap update; zero affected rows means the row was
// not in the expected status (or, for Complete, the session has not elapsed).
func (r *bookingRepository) casExec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
