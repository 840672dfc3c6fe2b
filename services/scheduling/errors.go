package scheduling

import "fmt"

// FlowError reports an invalid action against the booking flow's current state.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewFlowError(code, msg string) error {
	return &FlowError{Code: code, Message: msg}
}

// FieldError reports the first invalid booking-details field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var (
	ErrSessionNotFound = NewFlowError("sessionNotFound", "booking session not found or expired")
	ErrSubmitInFlight  = NewFlowError("submitInFlight", "a booking submission is already in progress")
)
