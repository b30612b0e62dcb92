package main

import (
	"bookingapi/booking/api"
	"bookingapi/booking/db"
	"bookingapi/booking/model"
	"bookingapi/booking/services"
	"bookingapi/config"
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NotDeletingInvokerMock answers every delete with 204 without removing anything.
type NotDeletingInvokerMock struct {
	delegate OperationInvoker
}

func (m *NotDeletingInvokerMock) Invoke(ctx context.Context, operation string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if operation == DELETE_BOOKING {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
	}
	return m.delegate.Invoke(ctx, operation, request)
}

func newInProcessInvoker() *InProcessInvoker {
	return NewInProcessInvoker(api.NewBookingApi(services.NewDefaultBookingService(db.NewBookingMemDao(), model.NewDefaultRoomTable())))
}

func TestSmokeScenarioPassesInProcess(t *testing.T) {
	require.NoError(t, RunSmokeScenario(context.Background(), newInProcessInvoker()))
}

func TestSmokeScenarioDetectsBrokenDelete(t *testing.T) {
	err := RunSmokeScenario(context.Background(), &NotDeletingInvokerMock{delegate: newInProcessInvoker()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get-booking answered 200, expected 404")
}

func TestInProcessInvokerRejectsUnknownOperations(t *testing.T) {
	_, err := newInProcessInvoker().Invoke(context.Background(), "room-rules", events.APIGatewayProxyRequest{})
	assert.Error(t, err)
}

func TestBuildBookingDaoHonoursDriver(t *testing.T) {
	bookingDao, err := buildBookingDao(context.Background(), config.Config{StorageDriver: config.MEMORY_DRIVER}, true)
	require.NoError(t, err)
	assert.IsType(t, &db.BookingMemDao{}, bookingDao)

	bookingDao, err = buildBookingDao(context.Background(), config.Config{
		StorageDriver: config.SQL_DRIVER,
		DatabaseURL:   "file:loader-test?mode=memory&cache=shared",
	}, true)
	require.NoError(t, err)
	assert.IsType(t, &db.BookingSqlDao{}, bookingDao)

	_, err = buildBookingDao(context.Background(), config.Config{StorageDriver: config.DYNAMODB_DRIVER}, true)
	assert.Error(t, err)
}

func TestCommandArgs(t *testing.T) {
	args := []string{"loader", "load", "-requests", "5", "aws", "-concurrency", "2"}

	assert.Equal(t, []string{"-requests", "5", "-concurrency", "2"}, commandArgs(args, "load"))
	assert.Nil(t, commandArgs(args, "smoke"))
}
