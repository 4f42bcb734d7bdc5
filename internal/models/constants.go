package models

const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
)

const (
	// CurrentBookingKey is the storage slot for the serialized current draft.
	// The slot is deleted when there is no current booking.
	CurrentBookingKey = "booking:current"

	// BookingHistoryKey is the storage slot for the confirmed-booking list,
	// most recent first. Always present, possibly empty.
	BookingHistoryKey = "booking:history"
)
