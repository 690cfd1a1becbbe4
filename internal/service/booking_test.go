package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/meeting"
	"expertdesk-backend/internal/service"
)

const pendingTTL = 30 * time.Minute

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Now().UTC().Add(24 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Booking).ID = 5
			}).
			Return(nil)

		b := &domain.Booking{
			ExpertID:     7,
			UserID:       3,
			Amount:       dec("100.00"),
			SessionStart: start,
			SessionEnd:   start.Add(time.Hour),
		}
		svc := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL)
		err := svc.Create(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), b.ID)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		if assert.NotNil(t, b.ExpiresAt) {
			assert.WithinDuration(t, time.Now().UTC().Add(pendingTTL), *b.ExpiresAt, 2*time.Second)
		}
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		repo := new(MockBookingRepo)
		b := &domain.Booking{Amount: dec("-1.00"), SessionStart: start, SessionEnd: start.Add(time.Hour)}

		err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Create(ctx, b)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ZeroAmountAllowed", func(t *testing.T) {
		// Free introductory sessions settle to nothing but are still bookable.
		repo := new(MockBookingRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		b := &domain.Booking{SessionStart: start, SessionEnd: start.Add(time.Hour)}

		err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Create(ctx, b)
		assert.NoError(t, err)
	})

	t.Run("SessionEndBeforeStart", func(t *testing.T) {
		b := &domain.Booking{Amount: dec("100.00"), SessionStart: start, SessionEnd: start.Add(-time.Hour)}

		err := service.NewBookingService(new(MockBookingRepo), new(MockRoomProvisioner), pendingTTL).Create(ctx, b)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestBookingService_Confirm(t *testing.T) {
	ctx := context.Background()
	expires := time.Now().UTC().Add(pendingTTL)
	pending := func() *domain.Booking {
		return &domain.Booking{
			ID: 5, ExpertID: 7, UserID: 3,
			Amount: dec("100.00"), Status: domain.BookingStatusPending,
			ExpiresAt: &expires,
		}
	}

	t.Run("NonAdmin", func(t *testing.T) {
		svc := service.NewBookingService(new(MockBookingRepo), new(MockRoomProvisioner), pendingTTL)
		_, err := svc.Confirm(ctx, expertActor, 5)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockBookingRepo)
		prov := new(MockRoomProvisioner)
		room := &meeting.Room{ID: "r-1", URL: "https://meet.example.com/rooms/r-1"}

		repo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		prov.On("CreateRoom", ctx, mock.AnythingOfType("*domain.Booking")).Return(room, nil)
		repo.On("Confirm", ctx, int64(5), room.URL).Return(nil)

		b, err := service.NewBookingService(repo, prov, pendingTTL).Confirm(ctx, adminActor, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, room.URL, b.MeetingURL)
		assert.Nil(t, b.ExpiresAt)
		repo.AssertExpectations(t)
		prov.AssertExpectations(t)
	})

	t.Run("AlreadyConfirmed", func(t *testing.T) {
		repo := new(MockBookingRepo)
		prov := new(MockRoomProvisioner)
		confirmed := pending()
		confirmed.Status = domain.BookingStatusConfirmed
		repo.On("GetByID", ctx, int64(5)).Return(confirmed, nil)

		_, err := service.NewBookingService(repo, prov, pendingTTL).Confirm(ctx, adminActor, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		prov.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything)
	})

	t.Run("ProvisioningFailureAborts", func(t *testing.T) {
		repo := new(MockBookingRepo)
		prov := new(MockRoomProvisioner)

		repo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		prov.On("CreateRoom", ctx, mock.AnythingOfType("*domain.Booking")).
			Return(nil, errors.New("provider quota exceeded"))

		_, err := service.NewBookingService(repo, prov, pendingTTL).Confirm(ctx, adminActor, 5)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ConcurrentExpiryReleasesRoom", func(t *testing.T) {
		repo := new(MockBookingRepo)
		prov := new(MockRoomProvisioner)
		room := &meeting.Room{ID: "r-2", URL: "https://meet.example.com/rooms/r-2"}

		repo.On("GetByID", ctx, int64(5)).Return(pending(), nil)
		prov.On("CreateRoom", ctx, mock.AnythingOfType("*domain.Booking")).Return(room, nil)
		repo.On("Confirm", ctx, int64(5), room.URL).Return(domain.ErrInvalidTransition)
		prov.On("DeleteRoom", ctx, "r-2").Return(nil)

		_, err := service.NewBookingService(repo, prov, pendingTTL).Confirm(ctx, adminActor, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		prov.AssertExpectations(t)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()
	confirmed := func() *domain.Booking {
		return &domain.Booking{
			ID: 5, ExpertID: 7, UserID: 3,
			Amount: dec("100.00"), Status: domain.BookingStatusConfirmed,
		}
	}

	t.Run("ByBookingClient", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", ctx, int64(5)).Return(confirmed(), nil)
		repo.On("Cancel", ctx, int64(5), domain.BookingStatusConfirmed, "schedule conflict").Return(nil)

		client := domain.Actor{ID: 3, Role: domain.RoleClient}
		b, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Cancel(ctx, client, 5, "schedule conflict")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, b.Status)
		assert.Equal(t, "schedule conflict", b.CancelReason)
	})

	t.Run("ByUnrelatedClient", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", ctx, int64(5)).Return(confirmed(), nil)

		stranger := domain.Actor{ID: 99, Role: domain.RoleClient}
		_, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Cancel(ctx, stranger, 5, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CompletedIsFinal", func(t *testing.T) {
		repo := new(MockBookingRepo)
		done := confirmed()
		done.Status = domain.BookingStatusCompleted
		repo.On("GetByID", ctx, int64(5)).Return(done, nil)
		repo.On("Cancel", ctx, int64(5), domain.BookingStatusConfirmed, "").Return(domain.ErrInvalidTransition)

		_, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Cancel(ctx, adminActor, 5, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestBookingService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("NonAdmin", func(t *testing.T) {
		svc := service.NewBookingService(new(MockBookingRepo), new(MockRoomProvisioner), pendingTTL)
		_, err := svc.Reject(ctx, domain.Actor{ID: 3, Role: domain.RoleClient}, 5, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Booking{ID: 5, Status: domain.BookingStatusPending}, nil)
		repo.On("Cancel", ctx, int64(5), domain.BookingStatusPending, "expert unavailable").Return(nil)

		b, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Reject(ctx, adminActor, 5, "expert unavailable")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, b.Status)
	})
}

func TestBookingService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("NonAdmin", func(t *testing.T) {
		repo := new(MockBookingRepo)

		_, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Complete(ctx, expertActor, 5)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("SessionStillRunning", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Booking{
			ID: 5, Status: domain.BookingStatusConfirmed,
			SessionEnd: time.Now().UTC().Add(time.Hour),
		}, nil)

		_, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Complete(ctx, adminActor, 5)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", ctx, int64(5)).Return(&domain.Booking{
			ID: 5, Status: domain.BookingStatusConfirmed,
			SessionEnd: time.Now().UTC().Add(-time.Hour),
		}, nil)
		repo.On("Complete", ctx, int64(5)).Return(nil)

		b, err := service.NewBookingService(repo, new(MockRoomProvisioner), pendingTTL).Complete(ctx, adminActor, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, b.Status)
	})
}
