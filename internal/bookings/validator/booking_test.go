package validator

import (
	"strings"
	"testing"

	"classbook/pkg/logger"
	"classbook/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		ClassID: "yoga-mon-9am",
		Name:    "Ana",
		Email:   "ana@x.com",
		Phone:   "123",
	}
}

func TestValidate_AllRequiredFieldsPresent(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(validRequest()); err != nil {
		t.Errorf("expected valid request, got: %v", err)
	}
}

func TestValidate_DescriptiveFieldsOptional(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	req.ClassName = ""
	req.Day = ""
	req.Time = ""
	req.Location = ""
	req.MaxSpots = 0

	if err := v.Validate(req); err != nil {
		t.Errorf("descriptive fields must be optional, got: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		mutate    func(*model.BookingRequest)
		wantField string
	}{
		{"missing classId", func(r *model.BookingRequest) { r.ClassID = "" }, "classId"},
		{"missing name", func(r *model.BookingRequest) { r.Name = "" }, "name"},
		{"missing email", func(r *model.BookingRequest) { r.Email = "" }, "email"},
		{"missing phone", func(r *model.BookingRequest) { r.Phone = "" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("expected error naming %q, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidate_AllFieldsMissing(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.BookingRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"classId", "name", "email", "phone"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected error naming %q, got: %v", field, err)
		}
	}
}
