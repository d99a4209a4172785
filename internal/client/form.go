package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"vendorly/internal/services"
)

// ErrValidation is returned before any request is made when a form is
// incomplete.
var ErrValidation = services.ErrValidation

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReviewForm is what a user fills in to review a vendor.
type ReviewForm struct {
	VendorID string `json:"vendor_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Text     string `json:"text" validate:"required,min=20,max=1000"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// Validate trims Text and reports every failed field in one error.
func (f *ReviewForm) Validate() error {
	f.Text = strings.TrimSpace(f.Text)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Rating":
		return "rating must be between 1 and 5"
	case "Text":
		return "review must be between 20 and 1000 characters"
	case "PhotoURL":
		return "photo must be a valid URL"
	case "VendorID":
		return "vendor is required"
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
