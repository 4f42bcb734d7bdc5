package repository

import (
	"context"
	"sync/atomic"
	"time"

	"velora/internal/domain"
	"velora/internal/models"

	"github.com/rs/zerolog"
)

// FailoverBookingRepository wraps a primary (Redis) and a fallback (memory)
// repository. After a primary failure all traffic goes to the fallback;
// reads probe the primary again after one minute.
type FailoverBookingRepository struct {
	primary   domain.BookingRepository
	fallback  domain.BookingRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos of the last failed primary attempt
}

func NewFailoverBookingRepository(primary, fallback domain.BookingRepository, logger *zerolog.Logger) *FailoverBookingRepository {
	return &FailoverBookingRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverBookingRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary booking repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverBookingRepository) probeDue() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute
}

func (r *FailoverBookingRepository) LoadCurrent(ctx context.Context) (*models.Booking, error) {
	if !r.isDown.Load() {
		booking, err := r.primary.LoadCurrent(ctx)
		if err == nil {
			return booking, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && r.probeDue() {
		booking, err := r.primary.LoadCurrent(ctx)
		if err == nil {
			r.isDown.Store(false)
			return booking, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.LoadCurrent(ctx)
}

func (r *FailoverBookingRepository) SaveCurrent(ctx context.Context, booking *models.Booking) error {
	if !r.isDown.Load() {
		err := r.primary.SaveCurrent(ctx, booking)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SaveCurrent(ctx, booking)
}

func (r *FailoverBookingRepository) ClearCurrent(ctx context.Context) error {
	if !r.isDown.Load() {
		err := r.primary.ClearCurrent(ctx)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearCurrent(ctx)
}

func (r *FailoverBookingRepository) LoadHistory(ctx context.Context) ([]models.Booking, error) {
	if !r.isDown.Load() {
		history, err := r.primary.LoadHistory(ctx)
		if err == nil {
			return history, nil
		}
		r.markDown(err)
	}

	if r.isDown.Load() && r.probeDue() {
		history, err := r.primary.LoadHistory(ctx)
		if err == nil {
			r.isDown.Store(false)
			return history, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.LoadHistory(ctx)
}

func (r *FailoverBookingRepository) SaveHistory(ctx context.Context, history []models.Booking) error {
	if !r.isDown.Load() {
		err := r.primary.SaveHistory(ctx, history)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SaveHistory(ctx, history)
}
