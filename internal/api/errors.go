package api

import "net/http"

// Error categories returned in the category field.
const (
	CategoryNotFound           = "NOT_FOUND"
	CategoryInternal           = "INTERNAL_ERROR"
	CategoryUnauthorized       = "UNAUTHORIZED"
	CategoryProvisioningFailed = "PROVISIONING_FAILED"
)

// Error is the JSON body of every error response.
type Error struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
	Category      string `json:"category"`
	Step          string `json:"step,omitempty"`
}

// NewNotFoundError creates a 404 error with the NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryNotFound,
	}
}

// NewInternalError creates a 500 error with the INTERNAL_ERROR category.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternal,
	}
}

// NewProvisioningError creates an error for a failed provisioning run,
// naming the step that failed.
func NewProvisioningError(message, step, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryProvisioningFailed,
		Step:          step,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
