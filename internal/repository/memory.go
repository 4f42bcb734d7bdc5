package repository

import (
	"context"
	"sync"

	"velora/internal/models"
)

// MemoryBookingRepository keeps both slots in process memory. Used as the
// failover fallback and in tests. Values are copied on the way in and out
// so callers cannot alias stored state.
type MemoryBookingRepository struct {
	mu      sync.RWMutex
	current *models.Booking
	history []models.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{}
}

func (r *MemoryBookingRepository) LoadCurrent(ctx context.Context) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, nil
	}
	booking := *r.current
	return &booking, nil
}

func (r *MemoryBookingRepository) SaveCurrent(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking == nil {
		r.current = nil
		return nil
	}
	stored := *booking
	r.current = &stored
	return nil
}

func (r *MemoryBookingRepository) ClearCurrent(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
	return nil
}

func (r *MemoryBookingRepository) LoadHistory(ctx context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Booking, len(r.history))
	copy(out, r.history)
	return out, nil
}

func (r *MemoryBookingRepository) SaveHistory(ctx context.Context, history []models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]models.Booking, len(history))
	copy(stored, history)
	r.history = stored
	return nil
}
