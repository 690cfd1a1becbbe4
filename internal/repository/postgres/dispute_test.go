package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/repository/postgres"
)

func TestDisputeRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := postgres.NewDisputeRepository(db)
	ctx := context.Background()

	d := &domain.Dispute{
		BookingID: 5,
		Status:    domain.DisputeStatusOpen,
		Reason:    "session never happened",
	}

	mock.ExpectQuery("INSERT INTO disputes").
		WithArgs(d.BookingID, d.Status, d.Reason).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	err = repo.Create(ctx, d)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), d.ID)
}

func TestDisputeRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := postgres.NewDisputeRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		created := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
		resolved := created.Add(72 * time.Hour)
		rows := sqlmock.NewRows([]string{"id", "booking_id", "status", "reason", "created_at", "resolved_at"}).
			AddRow(12, 5, "resolved_refunded", "session never happened", created, resolved)

		mock.ExpectQuery(`SELECT (.+) FROM disputes WHERE id = \$1`).
			WithArgs(int64(12)).
			WillReturnRows(rows)

		d, err := repo.GetByID(ctx, 12)
		assert.NoError(t, err)
		assert.Equal(t, domain.DisputeStatusResolvedRefunded, d.Status)
		assert.NotNil(t, d.ResolvedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM disputes WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		d, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, d)
	})
}

func TestDisputeRepository_CountByExpert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := postgres.NewDisputeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM disputes d`).
		WithArgs(int64(7), pq.Array([]string{"open", "under_review"})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByExpert(ctx, 7, domain.DisputeStatusOpen, domain.DisputeStatusUnderReview)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), count)
}
