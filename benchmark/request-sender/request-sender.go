package request_sender

import (
	"bookingapi/benchmark"
	"bookingapi/booking/api"
	"bookingapi/booking/model"
	"bookingapi/lambdautils"
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

type CreateBookingRequestsParameters struct {
	RequestsCount int
	// Every InvalidEvery-th request breaks the capacity rule; 0 disables invalid requests.
	InvalidEvery int

	SendingPeriodMillis   int
	MaxConcurrentRequests int
	Seed                  int64
}

type identifiedRequest struct {
	id      string
	request events.APIGatewayProxyRequest
}

func SendAndMeasureCreateBookingRequests(
	ctx context.Context,
	params CreateBookingRequestsParameters,
	sender RequestSender[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse],
	timeLogger benchmark.RequestTimeLogger) {

	var requestSenderWg sync.WaitGroup
	params.MaxConcurrentRequests = max(params.MaxConcurrentRequests, 1)

	inputQueue := make(chan identifiedRequest, params.MaxConcurrentRequests)
	for range params.MaxConcurrentRequests {
		requestSenderWg.Add(1)
		go handleCreateBookingRequest(ctx, inputQueue, &requestSenderWg, sender, timeLogger)
	}

	for i, request := range BuildCreateBookingRequests(params) {
		if i%params.MaxConcurrentRequests == 0 && params.SendingPeriodMillis > 0 {
			time.Sleep(time.Duration(params.SendingPeriodMillis) * time.Millisecond)
		}
		inputQueue <- identifiedRequest{id: "Request/" + strconv.Itoa(i), request: request}
	}
	close(inputQueue)
	requestSenderWg.Wait()
}

// BuildCreateBookingRequests produces create-booking events with a random room mix and a
// guest count matching its capacity, except for the requests selected by InvalidEvery.
func BuildCreateBookingRequests(params CreateBookingRequestsParameters) []events.APIGatewayProxyRequest {
	rnd := rand.New(rand.NewSource(params.Seed))
	roomTable := model.NewDefaultRoomTable()

	var requests []events.APIGatewayProxyRequest
	for i := range params.RequestsCount {
		var rooms []model.RoomSelection
		for _, roomType := range model.RoomTypes {
			if count := rnd.Intn(3); count > 0 {
				rooms = append(rooms, model.RoomSelection{Type: roomType, Count: count})
			}
		}
		if len(rooms) == 0 {
			rooms = append(rooms, model.RoomSelection{Type: model.DOUBLE, Count: 1})
		}

		guests := int(roomTable.Capacity(rooms))
		if params.InvalidEvery > 0 && (i+1)%params.InvalidEvery == 0 {
			guests++
		}

		body, err := json.Marshal(map[string]any{
			"guests": guests,
			"nights": 1 + rnd.Intn(7),
			"rooms":  rooms,
		})
		if err != nil {
			log.Fatalf("Could not serialize the booking request: %v", err)
		}
		requests = append(requests, events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Path:       "/bookings",
			Body:       string(body),
		})
	}

	return requests
}

func handleCreateBookingRequest(ctx context.Context, inputChannel chan identifiedRequest, wg *sync.WaitGroup,
	requestSender RequestSender[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse],
	timeLogger benchmark.RequestTimeLogger) {
	defer wg.Done()
	for request := range inputChannel {
		timeLogger.LogStartRequest(request.id)
		response, err := requestSender.Send(ctx, request.request)
		if err != nil {
			log.Printf("Failed to execute request with id %v: %v\n", request.id, err)
		}
		timeLogger.LogEndRequest(request.id, response.StatusCode)
	}
}

type RequestSender[R any, S any] interface {
	Send(ctx context.Context, request R) (S, error)
}

// HandlerSender calls a handler in process, without any network hop.
type HandlerSender struct {
	handler api.Handler
}

func NewHandlerSender(handler api.Handler) *HandlerSender {
	return &HandlerSender{handler: handler}
}

func (s *HandlerSender) Send(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return s.handler(ctx, request)
}

type LambdaSender struct {
	lambdaClient lambdautils.LambdaInvoker
	functionName string
}

func NewLambdaSender(lambdaClient lambdautils.LambdaInvoker, functionName string) *LambdaSender {
	return &LambdaSender{lambdaClient: lambdaClient, functionName: functionName}
}

func (s *LambdaSender) Send(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return lambdautils.InvokeBookingFunction(ctx, s.lambdaClient, s.functionName, request)
}
