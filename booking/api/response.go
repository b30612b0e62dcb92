package api

import (
	"bookingapi/booking/model"
	"encoding/json"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

const unhandledBody = `{"message":"Unexpected error occurred","code":"UNHANDLED_ERROR"}`

type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func jsonResponse(statusCode int, body any) events.APIGatewayProxyResponse {
	serializedBody, err := json.Marshal(body)
	if err != nil {
		log.Printf("Could not serialize response body: %v\n", err)
		return unhandledResponse()
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    jsonHeaders(),
		Body:       string(serializedBody),
	}
}

func ok(body any) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusOK, body)
}

func created(body any) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusCreated, body)
}

func noContent() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNoContent,
		Headers:    jsonHeaders(),
	}
}

func unhandledResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers:    jsonHeaders(),
		Body:       unhandledBody,
	}
}

func failureResponse(failure *model.Failure) events.APIGatewayProxyResponse {
	if failure.Kind == model.UNHANDLED {
		return unhandledResponse()
	}
	return jsonResponse(statusCodeOf(failure.Kind), ErrorBody{
		Message: failure.Message,
		Code:    failure.Code,
		Details: failure.Details,
	})
}

func statusCodeOf(kind model.FailureKind) int {
	switch kind {
	case model.INVALID_PAYLOAD, model.TOO_MANY_ROOMS, model.CAPACITY_MISMATCH, model.MISSING_IDENTIFIER:
		return http.StatusBadRequest
	case model.NOT_FOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
