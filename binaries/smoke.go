package main

import (
	"bookingapi/booking/api"
	"bookingapi/booking/model"
	"bookingapi/config"
	"bookingapi/lambdautils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"

	"github.com/aws/aws-lambda-go/events"
)

// Operation names double as the handler directory names and, with the configured prefix,
// as the deployed function names.
const (
	CREATE_BOOKING = "create-booking"
	GET_BOOKING    = "get-booking"
	LIST_BOOKINGS  = "list-bookings"
	UPDATE_BOOKING = "update-booking"
	DELETE_BOOKING = "delete-booking"
)

type OperationInvoker interface {
	Invoke(ctx context.Context, operation string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

type InProcessInvoker struct {
	handlers map[string]api.Handler
}

func NewInProcessInvoker(bookingApi *api.BookingApi) *InProcessInvoker {
	return &InProcessInvoker{handlers: map[string]api.Handler{
		CREATE_BOOKING: bookingApi.CreateBooking,
		GET_BOOKING:    bookingApi.GetBooking,
		LIST_BOOKINGS:  bookingApi.ListBookings,
		UPDATE_BOOKING: bookingApi.UpdateBooking,
		DELETE_BOOKING: bookingApi.DeleteBooking,
	}}
}

func (i *InProcessInvoker) Invoke(ctx context.Context, operation string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	handler, ok := i.handlers[operation]
	if !ok {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("unknown operation '%v'", operation)
	}
	return handler(ctx, request)
}

type LambdaInvoker struct {
	client lambdautils.LambdaInvoker
	cfg    config.Config
}

func NewLambdaInvoker(client lambdautils.LambdaInvoker, cfg config.Config) *LambdaInvoker {
	return &LambdaInvoker{client: client, cfg: cfg}
}

func (i *LambdaInvoker) Invoke(ctx context.Context, operation string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return lambdautils.InvokeBookingFunction(ctx, i.client, i.cfg.FunctionName(operation), request)
}

// RunSmokeScenario walks one booking through its whole lifecycle and fails on the first
// response that does not match the expected status or content.
func RunSmokeScenario(ctx context.Context, invoker OperationInvoker) error {
	roomTable := model.NewDefaultRoomTable()
	createRooms := []model.RoomSelection{{Type: model.DOUBLE, Count: 1}, {Type: model.SINGLE, Count: 1}}

	response, err := invokeExpecting(ctx, invoker, CREATE_BOOKING, http.StatusCreated, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/bookings",
		Body:       mustMarshal(map[string]any{"guests": 3, "nights": 2, "rooms": createRooms}),
	})
	if err != nil {
		return err
	}
	var createdEnvelope model.BookingEnvelope
	if err = json.Unmarshal([]byte(response.Body), &createdEnvelope); err != nil {
		return fmt.Errorf("create-booking returned an unreadable body: %w", err)
	}
	booking := createdEnvelope.Booking
	if expected := roomTable.Price(2, createRooms); booking.TotalPrice != expected {
		return fmt.Errorf("created booking %v costs %v, expected %v", booking.Id, booking.TotalPrice, expected)
	}
	log.Printf("Created booking %v for %v %v\n", booking.Id, booking.TotalPrice, booking.Currency)

	idParameters := map[string]string{api.ID_PATH_PARAMETER: booking.Id}
	if _, err = invokeExpecting(ctx, invoker, GET_BOOKING, http.StatusOK, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Path:           "/bookings/" + booking.Id,
		PathParameters: idParameters,
	}); err != nil {
		return err
	}

	updateRooms := []model.RoomSelection{{Type: model.SUITE, Count: 1}}
	response, err = invokeExpecting(ctx, invoker, UPDATE_BOOKING, http.StatusOK, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodPut,
		Path:           "/bookings/" + booking.Id,
		PathParameters: idParameters,
		Body:           mustMarshal(map[string]any{"guests": 3, "nights": 1, "rooms": updateRooms}),
	})
	if err != nil {
		return err
	}
	var updatedEnvelope model.BookingEnvelope
	if err = json.Unmarshal([]byte(response.Body), &updatedEnvelope); err != nil {
		return fmt.Errorf("update-booking returned an unreadable body: %w", err)
	}
	if expected := roomTable.Price(1, updateRooms); updatedEnvelope.Booking.TotalPrice != expected {
		return fmt.Errorf("updated booking %v costs %v, expected %v", booking.Id, updatedEnvelope.Booking.TotalPrice, expected)
	}

	response, err = invokeExpecting(ctx, invoker, LIST_BOOKINGS, http.StatusOK, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/bookings",
	})
	if err != nil {
		return err
	}
	var bookings []model.BookingRecord
	if err = json.Unmarshal([]byte(response.Body), &bookings); err != nil {
		return fmt.Errorf("list-bookings returned an unreadable body: %w", err)
	}
	if !slices.ContainsFunc(bookings, func(record model.BookingRecord) bool { return record.Id == booking.Id }) {
		return fmt.Errorf("booking %v is missing from the listing", booking.Id)
	}

	if _, err = invokeExpecting(ctx, invoker, DELETE_BOOKING, http.StatusNoContent, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodDelete,
		Path:           "/bookings/" + booking.Id,
		PathParameters: idParameters,
	}); err != nil {
		return err
	}

	if _, err = invokeExpecting(ctx, invoker, GET_BOOKING, http.StatusNotFound, events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodGet,
		Path:           "/bookings/" + booking.Id,
		PathParameters: idParameters,
	}); err != nil {
		return err
	}

	log.Printf("Smoke scenario completed for booking %v\n", booking.Id)
	return nil
}

func invokeExpecting(ctx context.Context, invoker OperationInvoker, operation string, expectedStatus int, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response, err := invoker.Invoke(ctx, operation, request)
	if err != nil {
		return response, fmt.Errorf("%v failed: %w", operation, err)
	}
	if response.StatusCode != expectedStatus {
		return response, fmt.Errorf("%v answered %v, expected %v: %v", operation, response.StatusCode, expectedStatus, response.Body)
	}
	return response, nil
}

func mustMarshal(value any) string {
	serialized, err := json.Marshal(value)
	if err != nil {
		log.Panicf("Could not serialize %v: %v", value, err)
	}
	return string(serialized)
}
