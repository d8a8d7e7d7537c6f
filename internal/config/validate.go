package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/harmony"
)

// ValidationError lists every invalid setting, keyed by flag name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("-%s %s", name, e.Fields[name])
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator with the palette-specific tags
// (color, rule, multipleof).
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for Config.
func New() *Validator {
	v := validator.New()

	// Use flag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" {
			return name
		}
		return fld.Name
	})

	mustRegister(v, "color", func(fl validator.FieldLevel) bool {
		_, err := colorspace.Parse(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "rule", func(fl validator.FieldLevel) bool {
		_, err := harmony.ParseRule(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "multipleof", func(fl validator.FieldLevel) bool {
		step, err := strconv.ParseInt(fl.Param(), 10, 64)
		if err != nil || step <= 0 {
			return false
		}
		return fl.Field().Int()%step == 0
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %q validation: %v", tag, err))
	}
}

// Validate validates a struct, collecting every failing field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = v.friendlyMessage(e)
	}
	return &ValidationError{Fields: fieldErrors}
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "color":
		return "must be a hex, rgb(...) or hsl(...) color"
	case "rule":
		names := make([]string, 0, len(harmony.AllRules()))
		for _, r := range harmony.AllRules() {
			names = append(names, r.String())
		}
		return "must be one of: " + strings.Join(names, ", ")
	case "multipleof":
		return "must be a multiple of " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gtefield":
		return "must be greater than or equal to -" + flagName(e.Param())
	default:
		return "is invalid"
	}
}

// flagName maps a Config field name to its flag, for cross-field messages.
func flagName(field string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(field); ok {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
	}
	return field
}
