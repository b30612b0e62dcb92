package model

import "context"

// BookingDao is the storage collaborator. Writes and deletes are unconditional.
type BookingDao interface {
	PutBooking(ctx context.Context, booking BookingRecord) error
	// GetBooking reports false when no booking is stored under id.
	GetBooking(ctx context.Context, id string) (BookingRecord, bool, error)
	ScanBookings(ctx context.Context) ([]BookingRecord, error)
	DeleteBooking(ctx context.Context, id string) error
}

type IdGenerator interface {
	NewId() string
}

type Clock interface {
	Now() string
}
