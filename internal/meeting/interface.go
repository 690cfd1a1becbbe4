package meeting

import (
	"context"

	"expertdesk-backend/internal/domain"
)

// Room is a provisioned video meeting room for a confirmed booking.
type Room struct {
	ID  string
	URL string
}

// Provisioner is the external video-room collaborator. Confirming a booking
// provisions a room first; a provisioning failure aborts the confirmation.
type Provisioner interface {
	CreateRoom(ctx context.Context, b *domain.Booking) (*Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
}
