package db

import (
	"bookingapi/booking/model"
	"context"
	"slices"
	"sync"
)

// BookingMemDao keeps bookings in process memory. Listing returns bookings in the order
// their ids were first stored.
type BookingMemDao struct {
	mu       sync.RWMutex
	bookings map[string]model.BookingRecord
	ids      []string
}

func NewBookingMemDao() *BookingMemDao {
	return &BookingMemDao{bookings: make(map[string]model.BookingRecord)}
}

func (dao *BookingMemDao) PutBooking(_ context.Context, booking model.BookingRecord) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	if _, ok := dao.bookings[booking.Id]; !ok {
		dao.ids = append(dao.ids, booking.Id)
	}
	dao.bookings[booking.Id] = cloneBooking(booking)
	return nil
}

func (dao *BookingMemDao) GetBooking(_ context.Context, id string) (model.BookingRecord, bool, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()

	booking, ok := dao.bookings[id]
	if !ok {
		return model.BookingRecord{}, false, nil
	}
	return cloneBooking(booking), true, nil
}

func (dao *BookingMemDao) ScanBookings(_ context.Context) ([]model.BookingRecord, error) {
	dao.mu.RLock()
	defer dao.mu.RUnlock()

	bookings := make([]model.BookingRecord, 0, len(dao.ids))
	for _, id := range dao.ids {
		bookings = append(bookings, cloneBooking(dao.bookings[id]))
	}
	return bookings, nil
}

func (dao *BookingMemDao) DeleteBooking(_ context.Context, id string) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()

	if _, ok := dao.bookings[id]; !ok {
		return nil
	}
	delete(dao.bookings, id)
	dao.ids = slices.DeleteFunc(dao.ids, func(storedId string) bool { return storedId == id })
	return nil
}

func cloneBooking(booking model.BookingRecord) model.BookingRecord {
	booking.Rooms = slices.Clone(booking.Rooms)
	if booking.Contact != nil {
		contact := *booking.Contact
		contact.Email = cloneString(contact.Email)
		contact.Phone = cloneString(contact.Phone)
		booking.Contact = &contact
	}
	return booking
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
