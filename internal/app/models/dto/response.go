package dto

// SuccessResponse represents a standard confirmation body
type SuccessResponse struct {
	Message string `json:"message" example:"Student deleted successfully."`
}

// NewSuccessResponse creates a confirmation body
func NewSuccessResponse(message string) *SuccessResponse {
	return &SuccessResponse{Message: message}
}
