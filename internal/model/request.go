package model

// CheckInRequest is the payload for the anonymous check-in endpoint.
type CheckInRequest struct {
	SignalType SignalType `json:"signal_type" binding:"required"`
}

// Response is the standard success envelope of the API.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
