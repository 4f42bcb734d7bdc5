package domain

import (
	"context"

	"velora/internal/models"
)

// BookingRepository is the durable two-slot key-value backend behind the
// booking store: one slot for the serialized current draft, one for the
// confirmed history. LoadCurrent returns nil with no error when the slot
// is absent.
type BookingRepository interface {
	LoadCurrent(ctx context.Context) (*models.Booking, error)
	SaveCurrent(ctx context.Context, booking *models.Booking) error
	ClearCurrent(ctx context.Context) error
	LoadHistory(ctx context.Context) ([]models.Booking, error)
	SaveHistory(ctx context.Context, history []models.Booking) error
}

type BookingStore interface {
	Start(ctx context.Context, service models.Service, variant models.Variant) *models.Booking
	Update(ctx context.Context, patch models.BookingPatch)
	Confirm(ctx context.Context) *models.Booking
	Cancel(ctx context.Context)
	ClearHistory(ctx context.Context)
	GetByID(id string) *models.Booking
	Current() *models.Booking
	History() []models.Booking
}

type Catalog interface {
	Services() []models.Service
	ServiceByID(id int64) *models.Service
	SetQuery(query string)
	ClearQuery()
	Query() models.SearchQuery
	Results() []models.Service
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
