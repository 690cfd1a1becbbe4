package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository"
)

type disputeRepository struct {
	db *sql.DB
}

func NewDisputeRepository(db *sql.DB) repository.DisputeRepository {
	return &disputeRepository{db: db}
}

func (r *disputeRepository) Create(ctx context.Context, d *domain.Dispute) error {
	query := `INSERT INTO disputes (booking_id, status, reason, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, d.BookingID, d.Status, d.Reason).Scan(&d.ID)
}

func (r *disputeRepository) GetByID(ctx context.Context, id int64) (*domain.Dispute, error) {
	d := &domain.Dispute{}
	query := `SELECT id, booking_id, status, COALESCE(reason, ''), created_at, resolved_at FROM disputes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.BookingID, &d.Status, &d.Reason, &d.CreatedAt, &d.ResolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *disputeRepository) CountByExpert(ctx context.Context, expertID int64, statuses ...domain.DisputeStatus) (int32, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var count int32
	query := `SELECT count(*) FROM disputes d
	          JOIN bookings b ON b.id = d.booking_id
	          WHERE b.expert_id = $1 AND d.status = ANY($2)`
	err := r.db.QueryRowContext(ctx, query, expertID, pq.Array(values)).Scan(&count)
	return count, err
}
