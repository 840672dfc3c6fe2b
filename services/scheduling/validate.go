package scheduling

import (
	"strings"

	"folio/models"
)

// ValidateBookingDetails checks the contact fields before submission and
// returns the first invalid field, or nil when all pass. It runs locally;
// a rejection never reaches the calendar client.
func ValidateBookingDetails(details models.BookingDetails) *FieldError {
	if strings.TrimSpace(details.Name) == "" {
		return &FieldError{Field: "name", Message: "Please enter your name"}
	}
	if err := validateEmail(details.Email); err != nil {
		return err
	}
	if strings.TrimSpace(details.Purpose) == "" {
		return &FieldError{Field: "purpose", Message: "Please describe the purpose of the call"}
	}
	return nil
}

// validateEmail accepts a conventional local@domain shape: exactly one "@"
// with non-empty parts on both sides. Full RFC validation is out of scope.
func validateEmail(email string) *FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		return &FieldError{Field: "email", Message: "Please enter your email address"}
	}
	at := strings.Count(email, "@")
	if at != 1 {
		return &FieldError{Field: "email", Message: "Please enter a valid email address"}
	}
	parts := strings.SplitN(email, "@", 2)
	if parts[0] == "" || parts[1] == "" {
		return &FieldError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}
