package validation

import "bookingapi/booking/model"

// CheckBusinessRules applies the booking rules to a structurally valid input. The room
// limit is checked before capacity, so an input breaking both reports TOO_MANY_ROOMS.
func CheckBusinessRules(table *model.RoomTable, input model.BookingInput) error {
	totalRooms := table.TotalRoomCount(input.Rooms)
	if totalRooms > int64(table.MaxRoomsPerBooking()) {
		return model.NewTooManyRooms(totalRooms, table.MaxRoomsPerBooking())
	}

	capacity := table.Capacity(input.Rooms)
	if capacity != int64(input.Guests) {
		return model.NewCapacityMismatch(input.Guests, capacity)
	}

	return nil
}

// ValidateBooking runs the shape checks and then the business rules.
func ValidateBooking(table *model.RoomTable, body []byte) (model.BookingInput, error) {
	input, err := ParseBookingInput(body)
	if err != nil {
		return model.BookingInput{}, err
	}
	if err = CheckBusinessRules(table, input); err != nil {
		return model.BookingInput{}, err
	}
	return input, nil
}
