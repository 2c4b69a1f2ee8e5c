package errors

import (
	"fmt"
	"strings"
)

// InvalidValueError carries a rejected value together with the values that
// would have been accepted at the time of the check.
type InvalidValueError struct {
	InvalidValue string   `json:"invalidValue"`
	ValidValues  []string `json:"validValues"`
}

func (e InvalidValueError) describe(subject string) string {
	return fmt.Sprintf("invalid %s %q (valid values: %s)", subject, e.InvalidValue, strings.Join(e.ValidValues, ", "))
}

// InvalidCategoryError is returned when an issue metadata write names a
// category code that is not an active category.
type InvalidCategoryError struct {
	InvalidValueError
}

// NewInvalidCategoryError builds the error, copying the valid set.
func NewInvalidCategoryError(value string, valid []string) *InvalidCategoryError {
	return &InvalidCategoryError{InvalidValueError{InvalidValue: value, ValidValues: append([]string(nil), valid...)}}
}

func (e *InvalidCategoryError) Error() string {
	return e.describe("category code")
}

// InvalidStateError is returned when a workflow transition targets a status
// outside the enumerated set.
type InvalidStateError struct {
	InvalidValueError
}

// NewInvalidStateError builds the error, copying the valid set.
func NewInvalidStateError(value string, valid []string) *InvalidStateError {
	return &InvalidStateError{InvalidValueError{InvalidValue: value, ValidValues: append([]string(nil), valid...)}}
}

func (e *InvalidStateError) Error() string {
	return e.describe("case status")
}

// Reference names one kind of row that blocks a taxonomy deletion.
type Reference struct {
	Kind      string   `json:"kind"`
	Count     int      `json:"count"`
	IntakeIDs []string `json:"intakeIds"`
}

// ReferentialIntegrityError is returned when deleting a category or option
// that is still referenced by intake data.
type ReferentialIntegrityError struct {
	Entity     string      `json:"entity"`
	Code       string      `json:"code"`
	References []Reference `json:"references"`
}

func (e *ReferentialIntegrityError) Error() string {
	parts := make([]string, 0, len(e.References))
	for _, ref := range e.References {
		parts = append(parts, fmt.Sprintf("%d %s", ref.Count, ref.Kind))
	}
	return fmt.Sprintf("cannot delete %s %q: referenced by %s", e.Entity, e.Code, strings.Join(parts, ", "))
}
