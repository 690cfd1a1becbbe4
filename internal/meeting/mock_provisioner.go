package meeting

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"expertdesk-backend/internal/domain"
	"expertdesk-backend/internal/logger"
)

// MockProvisioner issues local room URLs for development and tests, in place
// of a real video provider.
type MockProvisioner struct {
	baseURL string

	mu    sync.Mutex
	rooms map[string]int64 // room id -> booking id
}

func NewMockProvisioner(baseURL string) *MockProvisioner {
	return &MockProvisioner{
		baseURL: baseURL,
		rooms:   make(map[string]int64),
	}
}

func (p *MockProvisioner) CreateRoom(ctx context.Context, b *domain.Booking) (*Room, error) {
	roomID := uuid.New().String()

	p.mu.Lock()
	p.rooms[roomID] = b.ID
	p.mu.Unlock()

	logger.Debug("Provisioned mock meeting room", "room_id", roomID, "booking_id", b.ID)
	return &Room{
		ID:  roomID,
		URL: fmt.Sprintf("%s/rooms/%s", p.baseURL, roomID),
	}, nil
}

func (p *MockProvisioner) DeleteRoom(ctx context.Context, roomID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.rooms[roomID]; !ok {
		return fmt.Errorf("room %s not found", roomID)
	}
	delete(p.rooms, roomID)
	return nil
}
