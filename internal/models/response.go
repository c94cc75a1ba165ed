package models

// APIResponse is the envelope for every successful response.
// swagger:model APIResponse
type APIResponse struct {
	// Always true on success
	// default: true
	Success bool `json:"success"`

	// Response payload
	Data any `json:"data,omitempty"`

	// Human-readable message
	// default: OK
	Message string `json:"message"`
}

// APIErrorResponse is the envelope for every error response.
// swagger:model APIErrorResponse
type APIErrorResponse struct {
	// Always false on error
	// default: false
	Success bool `json:"success"`

	// Human-readable error message
	// default: Internal server error
	Message string `json:"message"`
}
