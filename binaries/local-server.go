package main

import (
	"bookingapi/booking/api"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gorilla/mux"
)

func newRouter(bookingApi *api.BookingApi, rulesApi *api.RulesApi) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/bookings", proxyHandler(bookingApi.CreateBooking)).Methods(http.MethodPost)
	router.HandleFunc("/bookings", proxyHandler(bookingApi.ListBookings)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{id}", proxyHandler(bookingApi.GetBooking)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{id}", proxyHandler(bookingApi.UpdateBooking)).Methods(http.MethodPut)
	router.HandleFunc("/bookings/{id}", proxyHandler(bookingApi.DeleteBooking)).Methods(http.MethodDelete)
	router.HandleFunc("/rooms/rules", proxyHandler(rulesApi.GetRoomRules)).Methods(http.MethodGet)
	return router
}

// proxyHandler serves a plain HTTP request through a handler written for API Gateway proxy events.
func proxyHandler(handler api.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("Could not read request body for %v %v: %v\n", r.Method, r.URL.Path, err)
			http.Error(w, "could not read request body", http.StatusBadRequest)
			return
		}

		response, err := handler(r.Context(), toProxyRequest(r, body))
		if err != nil {
			log.Printf("Handler for %v %v returned an error: %v\n", r.Method, r.URL.Path, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		for name, value := range response.Headers {
			w.Header().Set(name, value)
		}
		for name, values := range response.MultiValueHeaders {
			for _, value := range values {
				w.Header().Add(name, value)
			}
		}
		w.WriteHeader(response.StatusCode)
		if _, err = io.WriteString(w, response.Body); err != nil {
			log.Printf("Could not write response for %v %v: %v\n", r.Method, r.URL.Path, err)
		}
	}
}

func toProxyRequest(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = strings.Join(values, ",")
	}

	queryParameters := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			queryParameters[name] = values[0]
		}
	}

	return events.APIGatewayProxyRequest{
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               r.Header,
		QueryStringParameters:           queryParameters,
		MultiValueQueryStringParameters: r.URL.Query(),
		PathParameters:                  mux.Vars(r),
		Body:                            string(body),
	}
}
