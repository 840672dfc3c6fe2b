package scheduling

import (
	"testing"

	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBookingDetails(t *testing.T) {
	valid := models.BookingDetails{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Purpose: "Discuss a consulting engagement",
	}

	t.Run("accepts valid details", func(t *testing.T) {
		assert.Nil(t, ValidateBookingDetails(valid))
	})

	tests := []struct {
		name      string
		mutate    func(d *models.BookingDetails)
		wantField string
	}{
		{"empty name", func(d *models.BookingDetails) { d.Name = "" }, "name"},
		{"whitespace name", func(d *models.BookingDetails) { d.Name = "   " }, "name"},
		{"empty email", func(d *models.BookingDetails) { d.Email = "" }, "email"},
		{"email without at", func(d *models.BookingDetails) { d.Email = "ada.example.com" }, "email"},
		{"email with two ats", func(d *models.BookingDetails) { d.Email = "ada@@example.com" }, "email"},
		{"email missing local part", func(d *models.BookingDetails) { d.Email = "@example.com" }, "email"},
		{"email missing domain", func(d *models.BookingDetails) { d.Email = "ada@" }, "email"},
		{"empty purpose", func(d *models.BookingDetails) { d.Purpose = "" }, "purpose"},
		{"whitespace purpose", func(d *models.BookingDetails) { d.Purpose = "\t\n" }, "purpose"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := valid
			tc.mutate(&details)

			fieldErr := ValidateBookingDetails(details)
			require.NotNil(t, fieldErr)
			assert.Equal(t, tc.wantField, fieldErr.Field)
			assert.NotEmpty(t, fieldErr.Message)
		})
	}
}

func TestValidateBookingDetailsReportsFirstFailure(t *testing.T) {
	fieldErr := ValidateBookingDetails(models.BookingDetails{})
	require.NotNil(t, fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
}
