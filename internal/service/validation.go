package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/legal-intake-api/pkg/docgen"
)

// NewValidator returns a validator with the domain tags registered:
// "severity" accepts canonical severities and their synonyms,
// "schema_version" accepts v1, v2 and compat.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		_, ok := docgen.NormalizeSeverity(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("schema_version", func(fl validator.FieldLevel) bool {
		_, err := docgen.ParseSchemaVersion(fl.Field().String())
		return err == nil
	})
	return v
}
