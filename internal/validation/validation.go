// Package validation turns struct-tag validation failures into per-field, user-readable
// messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is matched by every *Error via errors.Is.
var ErrInvalid = errors.New("validation failed")

// Error reports the fields that failed validation, keyed by their JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool { return target == ErrInvalid }

// Add records a failure for field, keeping the first message per field.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// OrNil returns e when it holds failures and nil otherwise.
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) *Error {
	out := &Error{}
	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out.Add("_", err.Error())
		return out
	}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no puede superar los %s caracteres", fe.Param())
		}
		return fmt.Sprintf("no puede ser mayor a %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("no puede ser menor a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("no puede ser menor a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("no puede ser mayor a %s", fe.Param())
	case "oneof":
		return "valor inválido"
	}
	return "valor inválido"
}
