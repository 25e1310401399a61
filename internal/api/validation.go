package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// RegisterValidators adds the custom tags used by request DTOs to gin's validator
// and makes field errors report the JSON field name. Safe to call more than once.
func RegisterValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("calendardate", validateCalendarDate); err != nil {
			registerValidatorsErr = fmt.Errorf("register calendardate: %w", err)
		}
	})
	return registerValidatorsErr
}

// calendardate: the string must be a date ParseDate understands.
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(field.Name)
	}
	return name
}

// describeBindError renders a binding failure as short, field-level messages.
func describeBindError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Sprintf("%q is not a number", numErr.Num)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "request body is not valid JSON"
	}
	return err.Error()
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fe.Field() + " must be a positive number"
	case "calendardate":
		return fmt.Sprintf("%s %q is not a recognizable calendar date", fe.Field(), fe.Value())
	default:
		return fe.Field() + " is invalid"
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
