// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
//
// Two styles are offered and both feed the same [apperr.FieldError] list:
//
//   - The fluent [Validator] for rules that depend on more than one field.
//   - [Validator.Struct], which evaluates `validate:"..."` struct tags through
//     go-playground/validator (with the catalog's custom "isbn" rule).
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

var (
	// isbn10Regex matches nine digits followed by a digit or the X check character.
	isbn10Regex = regexp.MustCompile(`^[0-9]{9}[0-9X]$`)
	// isbn13Regex matches thirteen digits.
	isbn13Regex = regexp.MustCompile(`^[0-9]{13}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	// structValidator is shared; go-playground caches struct metadata and is safe for concurrent use.
	structValidator = newStructValidator()
)

func newStructValidator() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("isbn", func(fl playground.FieldLevel) bool {
		return IsISBN(fl.Field().String())
	})

	return v
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("date_of_death", death.Before(birth), "Must not precede the date of birth")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Struct evaluates the `validate` tags of target and records every failure.
func (v *Validator) Struct(target any) *Validator {
	err := structValidator.Struct(target)
	if err == nil {
		return v
	}

	var fieldErrors playground.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		v.add("", err.Error())
		return v
	}

	for _, fe := range fieldErrors {
		v.add(fe.Field(), describe(fe))
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// describe renders a go-playground failure in the same voice as the fluent rules.
func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Maximum %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Minimum %s characters", fe.Param())
	case "isbn":
		return "Must be a valid ISBN (10 or 13 characters)"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "email":
		return "Must be a valid email address"
	case "uuid":
		return "Must be a valid UUID"
	case "dive":
		return "Contains an invalid entry"
	default:
		return fmt.Sprintf("Failed the %q rule", fe.Tag())
	}
}

// # Normalization

// IsISBN reports whether value looks like an ISBN-10 or ISBN-13 without separators.
func IsISBN(value string) bool {
	return isbn10Regex.MatchString(value) || isbn13Regex.MatchString(value)
}

// Name trims surrounding whitespace and applies Unicode NFC so visually identical
// names compare equal in the store.
func Name(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// FieldError is a shortcut to create a single-field validation error.
func FieldError(field, message, value string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
		Value:   value,
	})
}
