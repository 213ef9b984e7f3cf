package validator

import (
	"errors"
	"fmt"
	"strings"

	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// BookingValidator enforces the all-fields-required rule on booking
// requests. Name and phone are deliberately not validated beyond presence.
type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate returns an error naming the missing fields, or nil.
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		missing = append(missing, jsonFieldName(fieldErr.Field()))
	}
	return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
}

func jsonFieldName(field string) string {
	switch field {
	case "ClassID":
		return "classId"
	default:
		return strings.ToLower(field)
	}
}
