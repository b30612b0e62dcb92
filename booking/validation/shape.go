package validation

import (
	"bookingapi/booking/model"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Largest integer a JSON number can carry without losing precision in common clients.
const maxSafeInteger = 1<<53 - 1

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ParseBookingInput checks the structure of a raw booking document. On failure the
// returned error is always an INVALID_PAYLOAD *model.Failure carrying model.FieldErrors.
func ParseBookingInput(body []byte) (model.BookingInput, error) {
	fieldErrors := model.NewFieldErrors()

	document, err := decodeDocument(body)
	if err != nil {
		fieldErrors.AddFormError(err.Error())
		return model.BookingInput{}, model.NewInvalidPayload(fieldErrors)
	}

	object, ok := document.(map[string]any)
	if !ok {
		fieldErrors.AddFormError(fmt.Sprintf("Expected object, received %v", typeName(document)))
		return model.BookingInput{}, model.NewInvalidPayload(fieldErrors)
	}

	input := readBookingInput(object, &fieldErrors)
	applyConstraints(input, &fieldErrors)

	if fieldErrors.Count() > 0 {
		return model.BookingInput{}, model.NewInvalidPayload(fieldErrors)
	}
	return input, nil
}

func decodeDocument(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("malformed JSON body: %v", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("malformed JSON body: unexpected data after the top-level value")
	}
	return document, nil
}

func readBookingInput(object map[string]any, fieldErrors *model.FieldErrors) model.BookingInput {
	input := model.BookingInput{Nights: 1}

	if raw, ok := object["guests"]; ok {
		input.Guests, _ = readInteger(raw, "guests", fieldErrors)
	} else {
		fieldErrors.AddFieldError("guests", "Required")
	}

	if raw, ok := object["nights"]; ok {
		input.Nights, _ = readInteger(raw, "nights", fieldErrors)
	}

	if raw, ok := object["rooms"]; ok {
		input.Rooms = readRooms(raw, fieldErrors)
	} else {
		fieldErrors.AddFieldError("rooms", "Required")
	}

	if raw, ok := object["contact"]; ok {
		input.Contact = readContact(raw, fieldErrors)
	}

	return input
}

func readRooms(raw any, fieldErrors *model.FieldErrors) []model.RoomSelection {
	items, ok := raw.([]any)
	if !ok {
		fieldErrors.AddFieldError("rooms", fmt.Sprintf("Expected array, received %v", typeName(raw)))
		return nil
	}

	rooms := make([]model.RoomSelection, len(items))
	for i, item := range items {
		path := fmt.Sprintf("rooms[%d]", i)
		object, isObject := item.(map[string]any)
		if !isObject {
			fieldErrors.AddFieldError(path, fmt.Sprintf("Expected object, received %v", typeName(item)))
			continue
		}

		if rawType, present := object["type"]; present {
			if roomType, isString := rawType.(string); isString {
				rooms[i].Type = model.RoomType(roomType)
			} else {
				fieldErrors.AddFieldError(path+".type", fmt.Sprintf("Expected string, received %v", typeName(rawType)))
			}
		} else {
			fieldErrors.AddFieldError(path+".type", "Required")
		}

		if rawCount, present := object["count"]; present {
			rooms[i].Count, _ = readInteger(rawCount, path+".count", fieldErrors)
		} else {
			fieldErrors.AddFieldError(path+".count", "Required")
		}
	}
	return rooms
}

func readContact(raw any, fieldErrors *model.FieldErrors) *model.Contact {
	object, ok := raw.(map[string]any)
	if !ok {
		fieldErrors.AddFieldError("contact", fmt.Sprintf("Expected object, received %v", typeName(raw)))
		return nil
	}

	contact := &model.Contact{}
	if rawName, present := object["name"]; present {
		if name, isString := rawName.(string); isString {
			contact.Name = name
		} else {
			fieldErrors.AddFieldError("contact.name", fmt.Sprintf("Expected string, received %v", typeName(rawName)))
		}
	} else {
		fieldErrors.AddFieldError("contact.name", "Required")
	}

	contact.Email = readOptionalString(object, "email", "contact.email", fieldErrors)
	contact.Phone = readOptionalString(object, "phone", "contact.phone", fieldErrors)
	return contact
}

func readOptionalString(object map[string]any, key string, path string, fieldErrors *model.FieldErrors) *string {
	raw, present := object[key]
	if !present {
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		fieldErrors.AddFieldError(path, fmt.Sprintf("Expected string, received %v", typeName(raw)))
		return nil
	}
	return &value
}

func readInteger(raw any, path string, fieldErrors *model.FieldErrors) (int, bool) {
	number, ok := raw.(json.Number)
	if !ok {
		fieldErrors.AddFieldError(path, fmt.Sprintf("Expected number, received %v", typeName(raw)))
		return 0, false
	}

	if integer, err := number.Int64(); err == nil {
		if integer > maxSafeInteger || integer < -maxSafeInteger {
			fieldErrors.AddFieldError(path, "Number must be a safe integer")
			return 0, false
		}
		return int(integer), true
	}

	float, err := number.Float64()
	if err != nil || math.IsInf(float, 0) {
		fieldErrors.AddFieldError(path, "Number must be a safe integer")
		return 0, false
	}
	if float != math.Trunc(float) {
		fieldErrors.AddFieldError(path, "Expected integer, received float")
		return 0, false
	}
	if math.Abs(float) > maxSafeInteger {
		fieldErrors.AddFieldError(path, "Number must be a safe integer")
		return 0, false
	}
	return int(float), true
}

// applyConstraints reports range and format violations, skipping fields that already
// failed (or sit below a field that failed) the structural checks.
func applyConstraints(input model.BookingInput, fieldErrors *model.FieldErrors) {
	err := validate.Struct(input)
	if err == nil {
		return
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.AddFormError(err.Error())
		return
	}

	structural := make(map[string]struct{}, len(fieldErrors.FieldErrors))
	for path := range fieldErrors.FieldErrors {
		structural[path] = struct{}{}
	}
	for _, fieldErr := range validationErrors {
		path := fieldPath(fieldErr.Namespace())
		if hasErrorAtOrAbove(structural, path) {
			continue
		}
		fieldErrors.AddFieldError(path, constraintMessage(fieldErr))
	}
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func hasErrorAtOrAbove(failedPaths map[string]struct{}, path string) bool {
	for {
		if _, failed := failedPaths[path]; failed {
			return true
		}
		i := strings.LastIndexAny(path, ".[")
		if i <= 0 {
			return false
		}
		path = path[:i]
	}
}

func constraintMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "gt":
		return fmt.Sprintf("Number must be greater than %v", fieldErr.Param())
	case "min":
		switch fieldErr.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("Array must contain at least %v element(s)", fieldErr.Param())
		case reflect.String:
			return fmt.Sprintf("String must contain at least %v character(s)", fieldErr.Param())
		default:
			return fmt.Sprintf("Number must be greater than or equal to %v", fieldErr.Param())
		}
	case "max":
		return fmt.Sprintf("String must contain at most %v character(s)", fieldErr.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		return fmt.Sprintf("Invalid enum value. Expected 'single' | 'double' | 'suite', received '%v'", fieldErr.Value())
	default:
		return fmt.Sprintf("Failed the '%v' constraint", fieldErr.Tag())
	}
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
