package http

import (
	"errors"
	"reflect"
	"strconv"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/pkg/id"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// decimals are validated through their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		return loan.Type(fl.Field().String()).Valid()
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.Equal(d.Round(2))
	})
	_ = v.RegisterValidation("decpos", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	// byte length, for bcrypt inputs
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	_ = v.RegisterValidation("decnonneg", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "loantype":
			out = append(out, FieldError{Field: field, Message: "must be one of Personal, Business, Mortgage, Auto, Education"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "decpos":
			out = append(out, FieldError{Field: field, Message: "must be greater than 0"})
		case "decnonneg":
			out = append(out, FieldError{Field: field, Message: "must not be negative"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be a date in " + e.Param() + " format"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " characters"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		case "maxbytes":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " bytes"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

func validationFailed(err error) ErrorResponse {
	return ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)}
}
