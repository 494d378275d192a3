/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// Error codes returned in structured tool output. Partial multi-tier
// failures are reported through the response status field, not an error.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeRegistryUnavailable = "REGISTRY_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// OpError provides structured error information for tool responses.
type OpError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *OpError) Error() string {
	return e.Message
}

// NewOpError creates a structured error with the given code and message.
func NewOpError(code, message string, details map[string]interface{}) *OpError {
	return &OpError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
