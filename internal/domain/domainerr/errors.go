// Package domainerr holds the structured failures raised by value objects,
// the user aggregate and the use cases. Every failure carries a Kind, a
// human readable message and a detail map that transports can serialize.
package domainerr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a domain failure. Kind values implement error so callers
// can match with errors.Is(err, domainerr.KindNotFound).
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindInvalidState   Kind = "INVALID_STATE"
	KindNotFound       Kind = "ENTITY_NOT_FOUND"
	KindDuplicateEmail Kind = "DUPLICATE_EMAIL"
	KindMatching       Kind = "MATCHING"
)

func (k Kind) Error() string { return string(k) }

// ValidationType tags which rule of a value object failed.
type ValidationType string

const (
	EmptyCheck      ValidationType = "empty_check"
	MinLength       ValidationType = "min_length"
	MaxLength       ValidationType = "max_length"
	PatternMismatch ValidationType = "pattern_mismatch"
	Generic         ValidationType = "generic"
)

// Error is the single failure type of the domain layer.
type Error struct {
	kind    Kind
	message string
	details map[string]any
}

func newError(kind Kind, message string, details map[string]any) *Error {
	if details == nil {
		details = map[string]any{}
	}
	return &Error{kind: kind, message: message, details: details}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Is matches a Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.kind
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Message() string { return e.message }

// Details returns a copy of the detail map.
func (e *Error) Details() map[string]any {
	out := make(map[string]any, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// Detail returns a single detail value.
func (e *Error) Detail(key string) (any, bool) {
	v, ok := e.details[key]
	return v, ok
}

var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"rawPassword":     {},
	"currentPassword": {},
	"newPassword":     {},
	"hash":            {},
	"token":           {},
}

// PublicDetails returns the details safe to hand back to an end user:
// secret keys are dropped and email values are masked.
func (e *Error) PublicDetails() map[string]any {
	out := make(map[string]any, len(e.details))
	for k, v := range e.details {
		if _, secret := sensitiveKeys[k]; secret {
			continue
		}
		if s, ok := v.(string); ok && (k == "email" || strings.Contains(s, "@")) {
			out[k] = MaskEmail(s)
			continue
		}
		out[k] = v
	}
	return out
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// As extracts the domain error from err.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of a domain error, or "" for anything else.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.kind
	}
	return ""
}

// NewValidation builds a validation failure for field. extra is merged into
// the details after field and validationType.
func NewValidation(field string, vt ValidationType, message string, extra map[string]any) *Error {
	d := map[string]any{
		"field":          field,
		"validationType": string(vt),
	}
	for k, v := range extra {
		d[k] = v
	}
	return newError(KindValidation, message, d)
}

func NewEmpty(field string) *Error {
	return NewValidation(field, EmptyCheck, field+" must not be empty", nil)
}

func NewMinLength(field string, min, actual int) *Error {
	return NewValidation(field, MinLength,
		fmt.Sprintf("%s must have at least %d characters", field, min),
		map[string]any{"minLength": min, "actualLength": actual})
}

func NewMaxLength(field string, max, actual int) *Error {
	return NewValidation(field, MaxLength,
		fmt.Sprintf("%s must have at most %d characters", field, max),
		map[string]any{"maxLength": max, "actualLength": actual})
}

func NewPatternMismatch(field, message string, extra map[string]any) *Error {
	return NewValidation(field, PatternMismatch, message, extra)
}

// NewInvalidState reports a lifecycle transition that is not allowed from
// the current state.
func NewInvalidState(entity, currentState, action string) *Error {
	return newError(KindInvalidState,
		fmt.Sprintf("cannot %s %s in state %s", action, strings.ToLower(entity), currentState),
		map[string]any{
			"entity":       entity,
			"currentState": currentState,
			"action":       action,
			"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
		})
}

// NewNotFound reports a failed lookup.
func NewNotFound(entity, identifierType, identifier, operation string) *Error {
	return newError(KindNotFound,
		fmt.Sprintf("%s not found", strings.ToLower(entity)),
		map[string]any{
			"entity":         entity,
			"identifierType": identifierType,
			"identifier":     identifier,
			"operation":      operation,
		})
}

// NewDuplicateEmail reports a uniqueness violation on email.
func NewDuplicateEmail(email, operation string) *Error {
	return newError(KindDuplicateEmail, "email is already registered",
		map[string]any{
			"email":     email,
			"conflict":  true,
			"operation": operation,
		})
}

// NewMatching reports that a secret did not match. Details never say which
// side of the comparison failed.
func NewMatching(field string) *Error {
	return newError(KindMatching, field+" does not match",
		map[string]any{"field": field})
}
