package utils

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

const DefaultPostalCodePattern = `^\d{5}(-\d{4})?$`

var (
	validate          = validator.New()
	postalCodePattern atomic.Pointer[regexp.Regexp]
)

func init() {
	postalCodePattern.Store(regexp.MustCompile(DefaultPostalCodePattern))

	// Report fields by their JSON names so clients can map errors to inputs.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodePattern.Load().MatchString(fl.Field().String())
	})

	// Money is stored with two decimals; finer amounts would price differently
	// from what is persisted.
	validate.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float() * 100
		return math.Abs(v-math.Round(v)) < 1e-6
	})
}

// SetPostalCodePattern replaces the structural check used by the postalcode tag.
func SetPostalCodePattern(pattern string) error {
	if pattern == "" {
		pattern = DefaultPostalCodePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile postal code pattern: %w", err)
	}
	postalCodePattern.Store(re)
	return nil
}

// ValidateStruct returns every violation keyed by field path, or nil.
func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[fieldPath(err)] = getErrorMessage(err)
		}
	}

	return errors
}

// fieldPath drops the root struct name from the namespace: vehicle.size.
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("Must match the format %s", err.Param())
	case "postalcode":
		return "Invalid postal code format"
	case "cents":
		return "Must have at most two decimal places"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
