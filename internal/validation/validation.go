// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validation checks user input against struct-tag schemas before
// anything is written. The same schemas run in the dashboard client and on
// the server.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// keyPattern matches translation and gallery keys.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Password limits.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

// MaxJSONContentSize is the upper bound for site content documents, in bytes.
const MaxJSONContentSize = 50000

// Normalizer is implemented by inputs that trim or otherwise clean their
// fields before validation.
type Normalizer interface {
	Normalize()
}

// Errors maps a JSON field name to its first validation message.
type Errors map[string]string

// Error implements error. Fields are listed in name order.
func (e Errors) Error() string {
	return "Validation failed: " + e.Summary()
}

// Summary renders "field: message" pairs joined by commas.
func (e Errors) Summary() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, ", ")
}

// First returns the message of the first field in name order.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return e[fields[0]]
}

// Validator wraps a configured validator.Validate.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "key", func(fl validator.FieldLevel) bool {
		return keyPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "has_upper", containsAny("ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	mustRegister(v, "has_lower", containsAny("abcdefghijklmnopqrstuvwxyz"))
	mustRegister(v, "has_digit", containsAny("0123456789"))
	mustRegister(v, "json_container", func(fl validator.FieldLevel) bool {
		return IsJSONContainer(fl.Field().String())
	})

	v.RegisterAlias("password", fmt.Sprintf("min=%d,max=%d,has_upper,has_lower,has_digit",
		PasswordMinLength, PasswordMaxLength))

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// containsAny matches ASCII character classes only.
func containsAny(chars string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), chars)
	}
}

// Struct normalizes and validates s. It returns nil or an Errors value.
func (val *Validator) Struct(s any) error {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}

	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, len(verrs))
	for _, fieldErr := range verrs {
		name := fieldErr.Field()
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = message(fieldErr, labelFor(s, fieldErr.StructField()))
	}
	return out
}

// Var validates a single value against tag. Errors are keyed by field and
// worded with label.
func (val *Validator) Var(value any, tag, field, label string) error {
	err := val.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return Errors{field: message(verrs[0], label)}
}

// labelFor reads the human label from the struct tag "label", falling back
// to the Go field name.
func labelFor(s any, structField string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return structField
	}
	if f, ok := t.FieldByName(structField); ok {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
	}
	return structField
}

func message(fe validator.FieldError, label string) string {
	param := fe.Param()
	switch fe.ActualTag() {
	case "required":
		return label + " is required"
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s", label, param)
		}
		return fmt.Sprintf("%s must be less than %s characters", label, param)
	case "min":
		if isNumeric(fe.Kind()) {
			return label + " must be a positive number"
		}
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "url":
		return "Must be a valid URL"
	case "email":
		return "Invalid email format"
	case "key":
		return label + " can only contain letters, numbers, dots, hyphens and underscores"
	case "has_upper":
		return label + " must contain at least one uppercase letter"
	case "has_lower":
		return label + " must contain at least one lowercase letter"
	case "has_digit":
		return label + " must contain at least one number"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "uuid", "uuid4":
		return label + " must be a valid ID"
	case "eqfield":
		return "Passwords do not match"
	case "json_container":
		return "JSON must be an object or array"
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, fe.ActualTag())
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsJSONContainer reports whether s parses as a JSON object or array.
func IsJSONContainer(s string) bool {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return false
	}
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// IsValidKey reports whether s is a well-formed translation or gallery key.
func IsValidKey(s string) bool {
	return keyPattern.MatchString(s)
}

// CheckPassword validates a password against the password policy.
func (val *Validator) CheckPassword(password string) error {
	return val.Var(password, "required,password", "password", "Password")
}
