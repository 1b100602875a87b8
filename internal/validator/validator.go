package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError содержит карту ошибок "поле" -> "сообщение".
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

// Validator - обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает Validator с json-именами полей и кастомными правилами.
func New() *Validator {
	v := validator.New()

	// В сообщениях используем имена из json-тегов DTO
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{validate: v}
}

// Validate возвращает *ValidationError, если структура не прошла проверку.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	customErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		customErrors[fieldPath(fe)] = getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

// fieldPath отрезает имя корневой структуры: "RegisterRequest.location.city" -> "location.city"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "notblank":
		return "Must not be blank"
	case "email":
		return "Must be a valid email address"
	case "min":
		if isSized(fe.Kind()) {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if isSized(fe.Kind()) {
			return fmt.Sprintf("Must be at most %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return "Must be a valid URL"
	case "future":
		return "Must be a date in the future"
	case "not-future":
		return "Must not be a date in the future"
	case "phone":
		return "Must be a valid phone number"
	case "year":
		return "Must be a year between 1900 and the current year"
	case "is-job-type":
		return "Must be one of: full-time, part-time, contract, internship, freelance"
	case "is-experience-level":
		return "Must be one of: entry, mid, senior, executive"
	case "is-company-size":
		return "Must be one of: 1-10, 11-50, 51-200, 201-500, 500+"
	case "is-job-status":
		return "Must be one of: approved, rejected, expired"
	case "is-plan":
		return "Must be one of: free, standard, premium"
	case "is-payment-status":
		return "Must be one of: pending, completed, failed, refunded"
	case "is-application-status":
		return "Must be one of: shortlisted, interviewed, rejected, hired"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}

func isSized(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Map
}
