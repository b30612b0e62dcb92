package model

import (
	"bookingapi/utils"
	"log"
)

const MAX_ROOMS_PER_BOOKING = 20

const RULES_NOTES = "Guests must exactly match total capacity of chosen rooms. Dates are optional and not enforced for availability."

// RoomTable holds the per-type capacity and nightly price. It is built once at startup
// and never modified afterward.
type RoomTable struct {
	capacity           map[RoomType]int
	pricePerNight      map[RoomType]int64
	maxRoomsPerBooking int
}

func NewDefaultRoomTable() *RoomTable {
	return &RoomTable{
		capacity:           map[RoomType]int{SINGLE: 1, DOUBLE: 2, SUITE: 3},
		pricePerNight:      map[RoomType]int64{SINGLE: 500, DOUBLE: 1000, SUITE: 1500},
		maxRoomsPerBooking: MAX_ROOMS_PER_BOOKING,
	}
}

func (rt *RoomTable) MaxRoomsPerBooking() int {
	return rt.maxRoomsPerBooking
}

func (rt *RoomTable) CapacityOf(roomType RoomType) int {
	capacity, ok := rt.capacity[roomType]
	if !ok {
		log.Panicf("Room type '%v' has no capacity entry: unknown room types must be rejected before pricing\n", roomType)
	}
	return capacity
}

func (rt *RoomTable) PricePerNightOf(roomType RoomType) int64 {
	price, ok := rt.pricePerNight[roomType]
	if !ok {
		log.Panicf("Room type '%v' has no price entry: unknown room types must be rejected before pricing\n", roomType)
	}
	return price
}

func (rt *RoomTable) Capacity(rooms []RoomSelection) int64 {
	return utils.SumInt64(rooms, func(room RoomSelection) int64 {
		return utils.MulInt64(int64(rt.CapacityOf(room.Type)), int64(room.Count))
	})
}

func (rt *RoomTable) TotalRoomCount(rooms []RoomSelection) int64 {
	return utils.SumInt64(rooms, func(room RoomSelection) int {
		return room.Count
	})
}

// Price is the cost of the whole stay. nights must be at least 1.
func (rt *RoomTable) Price(nights int, rooms []RoomSelection) int64 {
	perNight := utils.SumInt64(rooms, func(room RoomSelection) int64 {
		return utils.MulInt64(rt.PricePerNightOf(room.Type), int64(room.Count))
	})
	return utils.MulInt64(int64(nights), perNight)
}

func (rt *RoomTable) Rules() RoomRules {
	var types []RoomTypeRules
	for _, roomType := range RoomTypes {
		types = append(types, RoomTypeRules{
			Type:             roomType,
			Capacity:         rt.CapacityOf(roomType),
			PricePerNightSEK: rt.PricePerNightOf(roomType),
		})
	}
	return RoomRules{
		Types:              types,
		MaxRoomsPerBooking: rt.maxRoomsPerBooking,
		Notes:              RULES_NOTES,
	}
}
