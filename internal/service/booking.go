package service

import (
	"context"
	"fmt"
	"time"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/logger"
	"expertdesk-backend/internal/meeting"
	"expertdesk-backend/internal/repository"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	provisioner meeting.Provisioner
	pendingTTL  time.Duration
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	provisioner meeting.Provisioner,
	pendingTTL time.Duration,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		provisioner: provisioner,
		pendingTTL:  pendingTTL,
	}
}

func (s *bookingService) Create(ctx context.Context, b *domain.Booking) error {
	if b.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if !b.SessionEnd.After(b.SessionStart) {
		return fmt.Errorf("%w: session end must follow session start", domain.ErrInvalidTransition)
	}
	b.Status = domain.BookingStatusPending
	expires := time.Now().UTC().Add(s.pendingTTL)
	b.ExpiresAt = &expires
	return s.bookingRepo.Create(ctx, b)
}

func (s *bookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) Confirm(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.ErrInvalidTransition
	}

	// Two-phase confirm: provision the room first so a confirmed booking is
	// never left without one.
	room, err := s.provisioner.CreateRoom(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("provision meeting room: %w", err)
	}
	if err := s.bookingRepo.Confirm(ctx, id, room.URL); err != nil {
		// The booking was expired or cancelled concurrently; release the room.
		if delErr := s.provisioner.DeleteRoom(ctx, room.ID); delErr != nil {
			logger.Warn("Failed to release meeting room after aborted confirm",
				"booking_id", id, "room_id", room.ID, "error", delErr)
		}
		return nil, err
	}

	b.Status = domain.BookingStatusConfirmed
	b.MeetingURL = room.URL
	b.ExpiresAt = nil
	logger.Info("Booking confirmed", "booking_id", id, "expert_id", b.ExpertID)
	return b, nil
}

func (s *bookingService) Reject(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Cancel(ctx, id, domain.BookingStatusPending, reason); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusCancelled
	b.CancelReason = reason
	b.ExpiresAt = nil
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != b.UserID {
		return nil, domain.ErrUnauthorized
	}
	if err := s.bookingRepo.Cancel(ctx, id, domain.BookingStatusConfirmed, reason); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusCancelled
	b.CancelReason = reason
	return b, nil
}

func (s *bookingService) Complete(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.SessionEnd.After(time.Now().UTC()) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.bookingRepo.Complete(ctx, id); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusCompleted
	return b, nil
}
