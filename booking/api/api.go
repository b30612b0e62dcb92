package api

import (
	"bookingapi/booking/model"
	"bookingapi/booking/services"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

const ID_PATH_PARAMETER = "id"

type Handler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type BookingApi struct {
	bookingService *services.BookingService
}

func NewBookingApi(bookingService *services.BookingService) *BookingApi {
	return &BookingApi{bookingService: bookingService}
}

func (a *BookingApi) CreateBooking(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return withErrorHandling(ctx, "create-booking", func() (events.APIGatewayProxyResponse, error) {
		body, err := requestBody(request)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		booking, err := a.bookingService.Create(ctx, body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return created(model.BookingEnvelope{Message: "Booking created successfully", Booking: booking}), nil
	})
}

func (a *BookingApi) GetBooking(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return withErrorHandling(ctx, "get-booking", func() (events.APIGatewayProxyResponse, error) {
		booking, err := a.bookingService.Get(ctx, request.PathParameters[ID_PATH_PARAMETER])
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return ok(booking), nil
	})
}

func (a *BookingApi) ListBookings(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return withErrorHandling(ctx, "list-bookings", func() (events.APIGatewayProxyResponse, error) {
		bookings, err := a.bookingService.ListAll(ctx)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return ok(bookings), nil
	})
}

func (a *BookingApi) UpdateBooking(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return withErrorHandling(ctx, "update-booking", func() (events.APIGatewayProxyResponse, error) {
		id := request.PathParameters[ID_PATH_PARAMETER]
		if id == "" {
			return events.APIGatewayProxyResponse{}, model.NewMissingIdentifier()
		}

		body, err := requestBody(request)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		booking, err := a.bookingService.Update(ctx, id, body)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return ok(model.BookingEnvelope{Message: "Booking updated successfully", Booking: booking}), nil
	})
}

func (a *BookingApi) DeleteBooking(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return withErrorHandling(ctx, "delete-booking", func() (events.APIGatewayProxyResponse, error) {
		if err := a.bookingService.Delete(ctx, request.PathParameters[ID_PATH_PARAMETER]); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		return noContent(), nil
	})
}

type RulesApi struct {
	rulesService *services.RulesService
}

func NewRulesApi(rulesService *services.RulesService) *RulesApi {
	return &RulesApi{rulesService: rulesService}
}

func (a *RulesApi) GetRoomRules(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return withErrorHandling(ctx, "room-rules", func() (events.APIGatewayProxyResponse, error) {
		return ok(a.rulesService.RoomRules()), nil
	})
}

// withErrorHandling turns failures into their response envelopes. Anything else, panics
// included, is logged and answered with a generic 500. The returned error is always nil so
// the Lambda runtime never sees an invocation error.
func withErrorHandling(ctx context.Context, operation string, action func() (events.APIGatewayProxyResponse, error)) (response events.APIGatewayProxyResponse, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("Unhandled panic in %v (request %v): %v\n%s", operation, requestId(ctx), recovered, debug.Stack())
			response, err = unhandledResponse(), nil
		}
	}()

	response, err = action()
	if err == nil {
		return response, nil
	}

	if failure, isFailure := model.AsFailure(err); isFailure && failure.Kind != model.UNHANDLED {
		return failureResponse(failure), nil
	}

	log.Printf("Unhandled error in %v (request %v): %v\n", operation, requestId(ctx), err)
	return unhandledResponse(), nil
}

// requestBody returns the raw body, decoding it when API Gateway delivered it base64 encoded.
func requestBody(request events.APIGatewayProxyRequest) ([]byte, error) {
	if !request.IsBase64Encoded {
		return []byte(request.Body), nil
	}

	body, err := base64.StdEncoding.DecodeString(request.Body)
	if err != nil {
		fieldErrors := model.NewFieldErrors()
		fieldErrors.AddFormError(fmt.Sprintf("body is not valid base64: %v", err))
		return nil, model.NewInvalidPayload(fieldErrors)
	}
	return body, nil
}

func requestId(ctx context.Context) string {
	if lambdaContext, ok := lambdacontext.FromContext(ctx); ok {
		return lambdaContext.AwsRequestID
	}
	return "local"
}
