// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Every JSON endpoint answers with one of three shapes:
//
//	a resource     { "id": 1, "name": "Ana", "spec": "Math", "age": 21 }
//	a message      { "message": "Student added successfully" }
//	an error       { "error": "Student not found" }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of mutations that do not echo the resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes data as JSON with the given status code.
//
// Order matters: headers, then WriteHeader, then the body. Once
// WriteHeader runs the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Error wraps a fixed client-facing message.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Message wraps a fixed success message.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// ValidationError converts validator field errors into one readable
// sentence per field, joined with ", ".
//
//	{ "error": "field name must be at most 50 characters" }
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	msgs := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return ErrorResponse{Error: strings.Join(msgs, ", ")}
}
