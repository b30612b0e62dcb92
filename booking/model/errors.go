package model

import (
	"errors"
	"fmt"
)

type FailureKind string

const (
	INVALID_PAYLOAD    FailureKind = "InvalidPayload"
	TOO_MANY_ROOMS     FailureKind = "TooManyRooms"
	CAPACITY_MISMATCH  FailureKind = "CapacityMismatch"
	MISSING_IDENTIFIER FailureKind = "MissingIdentifier"
	NOT_FOUND          FailureKind = "NotFound"
	UNHANDLED          FailureKind = "Unhandled"
)

// Failure is an expected, caller-facing outcome of an operation. Code is stable and meant
// for machine consumption.
type Failure struct {
	Kind    FailureKind
	Code    string
	Message string
	Details any
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%v (%v): %v", f.Kind, f.Code, f.Message)
}

func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

func NewInvalidPayload(details FieldErrors) *Failure {
	return &Failure{Kind: INVALID_PAYLOAD, Code: "BAD_REQUEST", Message: "Invalid payload", Details: details}
}

func NewTooManyRooms(requested int64, limit int) *Failure {
	return &Failure{
		Kind:    TOO_MANY_ROOMS,
		Code:    "TOO_MANY_ROOMS",
		Message: fmt.Sprintf("Too many rooms requested: %d (max %d).", requested, limit),
	}
}

func NewCapacityMismatch(guests int, capacity int64) *Failure {
	return &Failure{
		Kind:    CAPACITY_MISMATCH,
		Code:    "CAPACITY_MISMATCH",
		Message: fmt.Sprintf("Guest count (%d) must exactly match room capacity (%d).", guests, capacity),
	}
}

func NewMissingIdentifier() *Failure {
	return &Failure{Kind: MISSING_IDENTIFIER, Code: "MISSING_ID", Message: "Missing booking id"}
}

func NewNotFound(id string) *Failure {
	return &Failure{Kind: NOT_FOUND, Code: "NOT_FOUND", Message: fmt.Sprintf("Booking with id '%v' not found", id)}
}

func NewUnhandled() *Failure {
	return &Failure{Kind: UNHANDLED, Code: "UNHANDLED_ERROR", Message: "Unexpected error occurred"}
}

// FieldErrors mirrors the shape of a flattened schema error: problems with the document as
// a whole, and problems keyed by field path such as "rooms[1].type".
type FieldErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func NewFieldErrors() FieldErrors {
	return FieldErrors{FormErrors: []string{}, FieldErrors: make(map[string][]string)}
}

func (fe *FieldErrors) AddFormError(msg string) {
	fe.FormErrors = append(fe.FormErrors, msg)
}

func (fe *FieldErrors) AddFieldError(path string, msg string) {
	fe.FieldErrors[path] = append(fe.FieldErrors[path], msg)
}

func (fe *FieldErrors) Count() int {
	return len(fe.FormErrors) + len(fe.FieldErrors)
}
