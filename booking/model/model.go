package model

type RoomType string

const (
	SINGLE RoomType = "single"
	DOUBLE RoomType = "double"
	SUITE  RoomType = "suite"
)

// RoomTypes lists the bookable room types in presentation order.
var RoomTypes = []RoomType{SINGLE, DOUBLE, SUITE}

const CURRENCY = "SEK"

type RoomSelection struct {
	Type  RoomType `json:"type" dynamodbav:"type" validate:"oneof=single double suite"`
	Count int      `json:"count" dynamodbav:"count" validate:"min=0"`
}

type Contact struct {
	Name  string  `json:"name" dynamodbav:"name" validate:"min=1,max=120"`
	Email *string `json:"email,omitempty" dynamodbav:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" dynamodbav:"phone,omitempty" validate:"omitempty,min=5,max=40"`
}

type BookingInput struct {
	Guests  int             `json:"guests" validate:"gt=0"`
	Nights  int             `json:"nights" validate:"gt=0"`
	Rooms   []RoomSelection `json:"rooms" validate:"min=1,dive"`
	Contact *Contact        `json:"contact,omitempty"`
}

// BookingRecord is the persisted form of a booking. Exactly one of CreatedAt and
// UpdatedAt is set, depending on the operation that last wrote it.
type BookingRecord struct {
	Id         string          `json:"id" dynamodbav:"id"`
	Guests     int             `json:"guests" dynamodbav:"guests"`
	Nights     int             `json:"nights" dynamodbav:"nights"`
	Rooms      []RoomSelection `json:"rooms" dynamodbav:"rooms"`
	Contact    *Contact        `json:"contact,omitempty" dynamodbav:"contact,omitempty"`
	Currency   string          `json:"currency" dynamodbav:"currency"`
	TotalPrice int64           `json:"totalPrice" dynamodbav:"totalPrice"`
	CreatedAt  string          `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`
	UpdatedAt  string          `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

type BookingEnvelope struct {
	Message string        `json:"message"`
	Booking BookingRecord `json:"booking"`
}

type RoomTypeRules struct {
	Type             RoomType `json:"type"`
	Capacity         int      `json:"capacity"`
	PricePerNightSEK int64    `json:"pricePerNightSEK"`
}

type RoomRules struct {
	Types              []RoomTypeRules `json:"types"`
	MaxRoomsPerBooking int             `json:"maxRoomsPerBooking"`
	Notes              string          `json:"notes"`
}
