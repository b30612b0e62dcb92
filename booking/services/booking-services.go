package services

import (
	"bookingapi/booking/model"
	"bookingapi/booking/validation"
	"context"
	"fmt"
)

type BookingService struct {
	bookingDao  model.BookingDao
	roomTable   *model.RoomTable
	idGenerator model.IdGenerator
	clock       model.Clock
}

func NewBookingService(bookingDao model.BookingDao, roomTable *model.RoomTable, idGenerator model.IdGenerator, clock model.Clock) *BookingService {
	return &BookingService{bookingDao: bookingDao, roomTable: roomTable, idGenerator: idGenerator, clock: clock}
}

func NewDefaultBookingService(bookingDao model.BookingDao, roomTable *model.RoomTable) *BookingService {
	return NewBookingService(bookingDao, roomTable, NewUuidGenerator(), NewUtcClock())
}

func (bs *BookingService) Create(ctx context.Context, body []byte) (model.BookingRecord, error) {
	input, err := validation.ValidateBooking(bs.roomTable, body)
	if err != nil {
		return model.BookingRecord{}, err
	}

	booking := bs.buildRecord(bs.idGenerator.NewId(), input)
	booking.CreatedAt = bs.clock.Now()

	if err = bs.bookingDao.PutBooking(ctx, booking); err != nil {
		return model.BookingRecord{}, fmt.Errorf("could not store booking %v: %w", booking.Id, err)
	}
	return booking, nil
}

func (bs *BookingService) Get(ctx context.Context, id string) (model.BookingRecord, error) {
	if id == "" {
		return model.BookingRecord{}, model.NewMissingIdentifier()
	}

	booking, found, err := bs.bookingDao.GetBooking(ctx, id)
	if err != nil {
		return model.BookingRecord{}, fmt.Errorf("could not fetch booking %v: %w", id, err)
	}
	if !found {
		return model.BookingRecord{}, model.NewNotFound(id)
	}
	return booking, nil
}

func (bs *BookingService) ListAll(ctx context.Context) ([]model.BookingRecord, error) {
	bookings, err := bs.bookingDao.ScanBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []model.BookingRecord{}
	}
	return bookings, nil
}

// Update replaces the whole booking stored under id. The id is not checked for prior
// existence, so updating an unknown id creates the booking, and the previous createdAt
// is not carried over.
func (bs *BookingService) Update(ctx context.Context, id string, body []byte) (model.BookingRecord, error) {
	if id == "" {
		return model.BookingRecord{}, model.NewMissingIdentifier()
	}

	input, err := validation.ValidateBooking(bs.roomTable, body)
	if err != nil {
		return model.BookingRecord{}, err
	}

	booking := bs.buildRecord(id, input)
	booking.UpdatedAt = bs.clock.Now()

	if err = bs.bookingDao.PutBooking(ctx, booking); err != nil {
		return model.BookingRecord{}, fmt.Errorf("could not replace booking %v: %w", id, err)
	}
	return booking, nil
}

// Delete succeeds whether or not a booking is stored under id.
func (bs *BookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.NewMissingIdentifier()
	}

	if err := bs.bookingDao.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("could not delete booking %v: %w", id, err)
	}
	return nil
}

func (bs *BookingService) buildRecord(id string, input model.BookingInput) model.BookingRecord {
	return model.BookingRecord{
		Id:         id,
		Guests:     input.Guests,
		Nights:     input.Nights,
		Rooms:      input.Rooms,
		Contact:    input.Contact,
		Currency:   model.CURRENCY,
		TotalPrice: bs.roomTable.Price(input.Nights, input.Rooms),
	}
}
