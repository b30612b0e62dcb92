package main

import (
	"bookingapi/booking/api"
	"bookingapi/booking/db"
	"bookingapi/booking/model"
	"bookingapi/booking/services"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	roomTable := model.NewDefaultRoomTable()
	server := httptest.NewServer(newRouter(
		api.NewBookingApi(services.NewDefaultBookingService(db.NewBookingMemDao(), roomTable)),
		api.NewRulesApi(services.NewRulesService(roomTable)),
	))
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method string, url string, body string) (*http.Response, string) {
	t.Helper()
	request, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response, string(responseBody)
}

func TestLocalServerRoutesBookingLifecycle(t *testing.T) {
	server := newTestServer(t)

	response, body := doRequest(t, http.MethodPost, server.URL+"/bookings",
		`{"guests":3,"nights":2,"rooms":[{"type":"double","count":1},{"type":"single","count":1}]}`)
	require.Equal(t, http.StatusCreated, response.StatusCode, body)
	assert.Equal(t, "application/json", response.Header.Get("Content-Type"))

	var envelope model.BookingEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	bookingUrl := server.URL + "/bookings/" + envelope.Booking.Id

	response, body = doRequest(t, http.MethodGet, bookingUrl, "")
	assert.Equal(t, http.StatusOK, response.StatusCode, body)

	response, body = doRequest(t, http.MethodPut, bookingUrl, `{"guests":2,"rooms":[{"type":"double","count":1}]}`)
	assert.Equal(t, http.StatusOK, response.StatusCode, body)

	response, body = doRequest(t, http.MethodGet, server.URL+"/bookings", "")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	var bookings []model.BookingRecord
	require.NoError(t, json.Unmarshal([]byte(body), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(1000), bookings[0].TotalPrice)

	response, body = doRequest(t, http.MethodDelete, bookingUrl, "")
	assert.Equal(t, http.StatusNoContent, response.StatusCode)
	assert.Empty(t, body)

	response, _ = doRequest(t, http.MethodGet, bookingUrl, "")
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestLocalServerRoomRules(t *testing.T) {
	response, body := doRequest(t, http.MethodGet, newTestServer(t).URL+"/rooms/rules", "")
	require.Equal(t, http.StatusOK, response.StatusCode)

	var rules model.RoomRules
	require.NoError(t, json.Unmarshal([]byte(body), &rules))
	assert.Equal(t, model.MAX_ROOMS_PER_BOOKING, rules.MaxRoomsPerBooking)
}

func TestLocalServerUnknownRoutes(t *testing.T) {
	server := newTestServer(t)

	response, _ := doRequest(t, http.MethodGet, server.URL+"/rooms", "")
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	response, _ = doRequest(t, http.MethodPatch, server.URL+"/bookings/abc", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)
}
