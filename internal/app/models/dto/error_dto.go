package dto

// ErrorResponse represents the standard error body. Errors is only
// populated for validation failures and carries every violated field.
type ErrorResponse struct {
	Error  string              `json:"error" example:"Student not found."`
	Errors map[string][]string `json:"errors,omitempty"`
}

// NewErrorResponse creates an error body with a single message
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// NewValidationErrorResponse creates the 422 body carrying per-field messages
func NewValidationErrorResponse(fields map[string][]string) *ErrorResponse {
	return &ErrorResponse{
		Error:  "The given data was invalid.",
		Errors: fields,
	}
}
