package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/sharefair-gateway/internal/errs"
)

// New reports fields by their json names so messages match the request body.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Check runs the validate tags of req and turns the first failure into a ValidationError.
func Check(v *validator.Validate, req any) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewValidationError(err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errs.NewValidationError(fmt.Sprintf("%s is required", fe.Field()))
	case "datetime":
		return errs.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD form", fe.Field()))
	default:
		return errs.NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
