package request

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateRequestInput carries the raw submission fields. Optional fields are
// pointers so "absent" and "blank" stay distinguishable until normalization.
type CreateRequestInput struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Email       string   `json:"email" validate:"required,email,max=160"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
	Type        string   `json:"type" validate:"required,max=60"`
	Priority    string   `json:"priority" validate:"omitempty,max=20"`
	Description string   `json:"description" validate:"required,max=1500"`
	Address     *string  `json:"address" validate:"omitempty,max=300"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// FieldError names a single violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete set of violated fields so callers can
// render the whole form error state at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Validator enforces the field constraints and cross-field invariants of a
// request submission. It never fails fast; all violations are collected.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateCreateInput trims all string fields, then checks every constraint.
// The returned input is the normalized form to persist; on failure the
// ValidationError lists every violated field.
func (v *Validator) ValidateCreateInput(input CreateRequestInput) (CreateRequestInput, *ValidationError) {
	input = normalizeInput(input)

	var fields []FieldError

	if err := v.validate.Struct(input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, FieldError{
					Field:   fe.Field(),
					Message: fieldErrorMessage(fe),
				})
			}
		} else {
			fields = append(fields, FieldError{Field: "input", Message: err.Error()})
		}
	}

	if (input.Latitude == nil) != (input.Longitude == nil) {
		missing := "latitude"
		if input.Longitude == nil {
			missing = "longitude"
		}
		fields = append(fields, FieldError{
			Field:   missing,
			Message: "latitude and longitude must be provided together",
		})
	}

	if len(fields) > 0 {
		return input, &ValidationError{Fields: fields}
	}
	return input, nil
}

func normalizeInput(input CreateRequestInput) CreateRequestInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Type = strings.TrimSpace(input.Type)
	input.Priority = strings.TrimSpace(input.Priority)
	input.Description = strings.TrimSpace(input.Description)
	input.Phone = trimOptional(input.Phone)
	input.Address = trimOptional(input.Address)
	return input
}

// trimOptional trims an optional field and collapses blank values to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "max":
		if fe.Kind() == reflect.Float64 {
			return fmt.Sprintf("must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Float64 {
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
