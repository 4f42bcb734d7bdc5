package models

import "time"

// CustomerInfo is the contact record attached to a draft before confirmation.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// Booking is a single reservation draft or confirmed record. Service and
// Variant are snapshots taken at Start time, so later catalog edits do not
// rewrite history.
type Booking struct {
	ID          string        `json:"id"`
	Service     Service       `json:"service"`
	Variant     Variant       `json:"variant"`
	Date        string        `json:"date,omitempty"`
	Time        string        `json:"time,omitempty"`
	Customer    *CustomerInfo `json:"customer,omitempty"`
	Status      string        `json:"status"` // draft, confirmed
	CreatedAt   time.Time     `json:"created_at"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
}

// BookingPatch carries the fields Update merges into the current draft.
// Nil fields are left untouched.
type BookingPatch struct {
	Date     *string       `json:"date,omitempty"`
	Time     *string       `json:"time,omitempty"`
	Customer *CustomerInfo `json:"customer,omitempty"`
}
