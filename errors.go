package predictionguard

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// BaseError is the base error type for all Prediction Guard client errors.
// The specific error kinds embed it, so errors.As can select on the kind
// while still reaching the message and status code.
type BaseError struct {
	// Message is the human-readable error message. For API errors this is
	// the "error" field of the service's error envelope.
	Message string

	// StatusCode is the HTTP status code, or 0 when no response was received.
	StatusCode int

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	msg := e.Message
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// APIError is returned when the service answers with a non-200 status, and
// for transport failures in the middle of an event stream.
type APIError struct {
	BaseError
}

// NewAPIError creates a new API error.
func NewAPIError(message string, statusCode int, cause error) *APIError {
	return &APIError{BaseError: BaseError{Message: message, StatusCode: statusCode, Cause: cause}}
}

// DecodeError is returned when a 200 response body is not the expected JSON.
// It signals a contract mismatch rather than a service-reported failure.
type DecodeError struct {
	BaseError

	// Body holds up to the first 512 bytes of the payload that failed to decode.
	Body string
}

// NewDecodeError creates a new decode error.
func NewDecodeError(message string, body []byte, cause error) *DecodeError {
	if len(body) > 512 {
		body = body[:512]
	}
	return &DecodeError{
		BaseError: BaseError{Message: message, StatusCode: http.StatusOK, Cause: cause},
		Body:      string(body),
	}
}

// StreamDecodeError is returned when a single server-sent event carries a
// payload that is not valid JSON. It aborts the stream.
type StreamDecodeError struct {
	BaseError

	// Data is the raw event payload.
	Data string
}

// NewStreamDecodeError creates a new stream decode error.
func NewStreamDecodeError(data string, cause error) *StreamDecodeError {
	return &StreamDecodeError{
		BaseError: BaseError{Message: "error parsing stream response", Cause: cause},
		Data:      data,
	}
}

// ConfigError is returned when client configuration is missing or invalid.
type ConfigError struct {
	BaseError

	// Field names the offending setting, e.g. "APIKey".
	Field string
}

// NewConfigError creates a new configuration error.
func NewConfigError(field, message string, cause error) *ConfigError {
	return &ConfigError{
		BaseError: BaseError{Message: message, Cause: cause},
		Field:     field,
	}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: %s", e.Field, e.BaseError.Error())
	}
	return "config: " + e.BaseError.Error()
}

// errorEnvelope is the body the service sends with a non-200 status.
type errorEnvelope struct {
	Error  string `json:"error"`
	Status *int   `json:"status,omitempty"`
}

// ParseAPIError converts a non-200 response body into an *APIError.
//
// The body is expected to be {"error": "..."} with an optional numeric
// "status". When the body cannot be parsed the returned error says so and
// carries the parse failure as its cause.
func ParseAPIError(statusCode int, body []byte) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return NewAPIError(fmt.Sprintf("error parsing error response, %v", err), statusCode, err)
	}

	if env.Status != nil && *env.Status > 0 {
		statusCode = *env.Status
	}

	message := env.Error
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d error", statusCode)
	}

	return NewAPIError(message, statusCode, nil)
}
