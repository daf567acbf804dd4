// Package validation wraps go-playground/validator for struct-tag checks on
// domain and config types.
package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns the shared validator instance.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}

// Struct validates a struct using its `validate` tags.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single value against tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
