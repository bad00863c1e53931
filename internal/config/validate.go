package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"channelhub/internal/broker"
	"channelhub/pkg/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the "keykind" and "notblank"
// tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("keykind", func(fl validator.FieldLevel) bool {
			_, err := broker.ParseKeyKind(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		validate = v
	})
	return validate
}

// Validate checks field constraints and that every definition kind is unique.
func (c Config) Validate() error {
	if err := Validator().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return ValidateDefinitions(c.Definitions)
}

// ValidateDefinitions checks each module definition and rejects repeated kinds.
func ValidateDefinitions(defs []types.ModuleDefinition) error {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if err := Validator().Struct(d); err != nil {
			return fmt.Errorf("module %q: %w", d.Kind, err)
		}
		if seen[d.Kind] {
			return fmt.Errorf("module %q: %w", d.Kind, ErrDuplicateKind)
		}
		seen[d.Kind] = true
	}
	return nil
}

// ErrDuplicateKind is returned when two definitions share a module kind.
var ErrDuplicateKind = errors.New("duplicate module kind")
