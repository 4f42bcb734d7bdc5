package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"velora/internal/domain"
	"velora/internal/events"
	"velora/internal/metrics"
	"velora/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BookingStore owns the single current draft and the confirmed history.
// Every mutation is written through to the repository immediately; the
// in-memory copy stays authoritative when a write fails (the failover
// repository already downgrades a dead primary, so a mutation is never
// surfaced to the caller as an error).
//
// The store performs no input validation. Guarding "is there a valid
// draft" is the caller's job; Update and Confirm on an empty store are
// documented no-ops.
type BookingStore struct {
	mu      sync.Mutex
	current *models.Booking
	history []models.Booking

	repo   domain.BookingRepository
	bus    domain.EventPublisher
	logger *zerolog.Logger
}

// NewBookingStore loads both slots from the repository. An absent current
// slot yields a nil draft, an absent history slot an empty list.
func NewBookingStore(ctx context.Context, repo domain.BookingRepository, bus domain.EventPublisher, logger *zerolog.Logger) (*BookingStore, error) {
	current, err := repo.LoadCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current booking: %w", err)
	}

	history, err := repo.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load booking history: %w", err)
	}
	if history == nil {
		history = []models.Booking{}
	}

	return &BookingStore{
		current: current,
		history: history,
		repo:    repo,
		bus:     bus,
		logger:  logger,
	}, nil
}

// Start creates a fresh draft from the given catalog snapshots, replacing
// any existing draft. Last selection wins; no warning if one existed.
func (s *BookingStore) Start(ctx context.Context, service models.Service, variant models.Variant) *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking := &models.Booking{
		ID:        uuid.NewString(),
		Service:   service,
		Variant:   variant,
		Status:    models.StatusDraft,
		CreatedAt: time.Now(),
	}

	s.current = booking
	s.persistCurrent(ctx)
	s.publish(events.EventBookingStarted, *booking)
	metrics.IncBookingOp("start")

	out := *booking
	return &out
}

// Update shallow-merges the patch into the current draft. Precondition: a
// draft exists. Calling Update with no draft is a precondition violation;
// it is logged and ignored rather than raised (callers are expected to
// have redirected away before reaching this state).
func (s *BookingStore) Update(ctx context.Context, patch models.BookingPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.logger.Error().Msg("update called with no current booking")
		return
	}

	if patch.Date != nil {
		s.current.Date = *patch.Date
	}
	if patch.Time != nil {
		s.current.Time = *patch.Time
	}
	if patch.Customer != nil {
		customer := *patch.Customer
		s.current.Customer = &customer
	}

	s.persistCurrent(ctx)
	s.publish(events.EventBookingUpdated, *s.current)
	metrics.IncBookingOp("update")
}

// Confirm stamps the draft confirmed, prepends it to history and clears
// the current slot. Returns nil without touching history when there is no
// draft. A booking passes through here at most once; it is never mutated
// again after confirmation.
func (s *BookingStore) Confirm(ctx context.Context) *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	now := time.Now()
	confirmed := *s.current
	confirmed.Status = models.StatusConfirmed
	confirmed.ConfirmedAt = &now

	s.history = append([]models.Booking{confirmed}, s.history...)
	s.current = nil

	if err := s.repo.ClearCurrent(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear current booking slot")
	}
	s.persistHistory(ctx)
	s.publish(events.EventBookingConfirmed, confirmed)
	metrics.IncBookingOp("confirm")

	out := confirmed
	return &out
}

// Cancel discards the current draft, if any.
func (s *BookingStore) Cancel(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	had := s.current != nil
	cancelled := s.current
	s.current = nil

	if err := s.repo.ClearCurrent(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear current booking slot")
	}
	if had {
		s.publish(events.EventBookingCancelled, *cancelled)
	}
	metrics.IncBookingOp("cancel")
}

// ClearHistory empties the confirmed list.
func (s *BookingStore) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = []models.Booking{}
	s.persistHistory(ctx)

	if s.bus != nil {
		if err := s.bus.PublishJSON(events.EventHistoryCleared, struct{}{}); err != nil {
			s.logger.Error().Err(err).Msg("publish event error")
		}
	}
	metrics.IncBookingOp("clear_history")
}

// GetByID returns the first confirmed booking with the given ID, or nil.
func (s *BookingStore) GetByID(id string) *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.history {
		if s.history[i].ID == id {
			out := s.history[i]
			return &out
		}
	}
	return nil
}

// Current returns a copy of the current draft, or nil.
func (s *BookingStore) Current() *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	out := *s.current
	return &out
}

// History returns a copy of the confirmed list, most recent first.
func (s *BookingStore) History() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Booking, len(s.history))
	copy(out, s.history)
	return out
}

func (s *BookingStore) persistCurrent(ctx context.Context) {
	if err := s.repo.SaveCurrent(ctx, s.current); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist current booking")
	}
}

func (s *BookingStore) persistHistory(ctx context.Context) {
	if err := s.repo.SaveHistory(ctx, s.history); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist booking history")
	}
}

func (s *BookingStore) publish(eventType string, booking models.Booking) {
	if s.bus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		ServiceID:   booking.Service.ID,
		ServiceName: booking.Service.Name,
		VariantID:   booking.Variant.ID,
		VariantName: booking.Variant.Name,
		Price:       booking.Variant.Price,
		Status:      booking.Status,
		Date:        booking.Date,
		Time:        booking.Time,
	}

	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}
