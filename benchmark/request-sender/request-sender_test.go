package request_sender

import (
	"bookingapi/benchmark"
	"bookingapi/booking/api"
	"bookingapi/booking/db"
	"bookingapi/booking/model"
	"bookingapi/booking/services"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCreateBookingRequests(t *testing.T) {
	params := CreateBookingRequestsParameters{RequestsCount: 12, InvalidEvery: 4, Seed: 42}
	roomTable := model.NewDefaultRoomTable()

	requests := BuildCreateBookingRequests(params)
	require.Len(t, requests, 12)
	assert.Equal(t, requests, BuildCreateBookingRequests(params))

	for i, request := range requests {
		var input model.BookingInput
		require.NoError(t, json.Unmarshal([]byte(request.Body), &input))
		capacity := roomTable.Capacity(input.Rooms)
		if (i+1)%4 == 0 {
			assert.Equal(t, capacity+1, int64(input.Guests), "request %v", i)
		} else {
			assert.Equal(t, capacity, int64(input.Guests), "request %v", i)
		}
		assert.GreaterOrEqual(t, input.Nights, 1)
	}
}

func TestSendAndMeasureAgainstInProcessHandler(t *testing.T) {
	bookingDao := db.NewBookingMemDao()
	bookingApi := api.NewBookingApi(services.NewDefaultBookingService(bookingDao, model.NewDefaultRoomTable()))
	timeLogger := benchmark.NewRequestTimeLoggerImpl()

	SendAndMeasureCreateBookingRequests(context.Background(), CreateBookingRequestsParameters{
		RequestsCount:         20,
		InvalidEvery:          5,
		MaxConcurrentRequests: 4,
		Seed:                  7,
	}, NewHandlerSender(bookingApi.CreateBooking), timeLogger)

	summary := timeLogger.Summarize()
	assert.Equal(t, 20, summary.RequestsCount)
	assert.Equal(t, map[int]int{http.StatusCreated: 16, http.StatusBadRequest: 4}, summary.CountPerStatus)

	bookings, err := bookingDao.ScanBookings(context.Background())
	require.NoError(t, err)
	assert.Len(t, bookings, 16)
}
