// Package validator validates configuration and request structs with
// go-playground/validator, reporting failures by their JSON field path.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, key := range []string{"json", "yaml"} {
			name := strings.Split(field.Tag.Get(key), ",")[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
}

// errorMessages maps validation tags to custom error messages.
var errorMessages = map[string]string{
	"required": "The field '%s' is required.",
	"min":      "The field '%s' must be at least %s.",
	"max":      "The field '%s' must be at most %s.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"gt":       "The field '%s' must be greater than %s.",
	"lt":       "The field '%s' must be less than %s.",
	"oneof":    "The field '%s' must be one of [%s].",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(path string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, path, e.Param())
		}
		return fmt.Sprintf(msg, path)
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", path, e.Tag())
}

// fieldPath drops the root struct name from a namespace: Config.data.driver
// becomes data.driver.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidateStruct validates a struct and returns a map of dotted JSON field
// paths to friendly error messages. The map is empty when s is valid.
func ValidateStruct(s any) map[string]string {
	failures := make(map[string]string)

	err := validate.Struct(s)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			path := fieldPath(e)
			failures[path] = parseMessage(path, e)
		}
	} else if err != nil {
		failures[""] = err.Error()
	}

	return failures
}

// Validate validates a struct and joins the failures into one error, sorted
// by field path.
func Validate(s any) error {
	failures := ValidateStruct(s)
	if len(failures) == 0 {
		return nil
	}
	paths := make([]string, 0, len(failures))
	for path := range failures {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	msgs := make([]string, len(paths))
	for i, path := range paths {
		msgs[i] = failures[path]
	}
	return errors.New(strings.Join(msgs, " "))
}
