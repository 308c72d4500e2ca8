package apperrors

// ErrorResponse is the client-facing envelope. It is a lossy projection
// of the ErrorEvent: the code and the opaque error ID are the only
// things that survive; everything else is replaced by a generic message
// unless the mapper runs in verbose mode.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the stable code and the correlation ID support
// staff use to locate the full server-side record.
type ErrorDetail struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	ErrorID string `json:"errorId"`
	Trace   string `json:"trace,omitempty"` // verbose mode only
}
