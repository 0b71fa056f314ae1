// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Success responses may carry any JSON shape (a student, a list). Error
// responses always look like:
//
//	{ "error": "field name is required" }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MsgInternal is the body sent for any server-side failure. The cause is
// logged, never returned to the client.
const MsgInternal = "internal server error"

// Response is the error envelope.
type Response struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes a bodiless 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// GeneralError wraps any Go error into the error envelope.
func GeneralError(err error) Response {
	return Response{Error: err.Error()}
}

// InternalError is the envelope for 500 responses.
func InternalError() Response {
	return Response{Error: MsgInternal}
}

// ValidationError converts validator field errors into one readable
// message, e.g. "field name is required, field address is required".
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{Error: strings.Join(errMessages, ", ")}
}
