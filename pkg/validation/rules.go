package validation

import (
	"regexp"

	"maintenance-system/internal/lifecycle"

	"github.com/go-playground/validator/v10"
)

var equipmentCodeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// registerRules wires the domain rules used by the DTO tags.
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("lifecycle_state", func(fl validator.FieldLevel) bool {
		_, err := lifecycle.ParseState(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("equipment_code", func(fl validator.FieldLevel) bool {
		return equipmentCodeRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
