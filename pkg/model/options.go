package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultAzPath is the executable used when no path is configured.
const DefaultAzPath = "az"

// OutputFormats lists the values accepted by the az --output flag.
var OutputFormats = []string{"json", "jsonc", "table", "tsv", "yaml", "yamlc", "none"}

// Options configures a cli.CLI. Each field can come from the YAML options file or
// from an AZCLI_* environment variable; the environment wins.
type Options struct {
	AzPath       string `yaml:"az_path" env:"AZCLI_AZ_PATH" validate:"required,noctl"`
	Subscription string `yaml:"subscription,omitempty" env:"AZCLI_SUBSCRIPTION" validate:"omitempty,noctl"`
	Output       string `yaml:"output,omitempty" env:"AZCLI_OUTPUT" validate:"omitempty,oneof=json jsonc table tsv yaml yamlc none"`
	Query        string `yaml:"query,omitempty" env:"AZCLI_QUERY" validate:"omitempty,noctl"`
	Debug        bool   `yaml:"debug,omitempty" env:"AZCLI_DEBUG"`
	Verbose      bool   `yaml:"verbose,omitempty" env:"AZCLI_VERBOSE"`
}

var _ Validator = (*Options)(nil)

// validate is shared; building a validator.Validate caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("noctl", func(fl validator.FieldLevel) bool {
		return !hasControlChars(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ApplyDefaults fills unset fields with their default values.
func (o *Options) ApplyDefaults() {
	if strings.TrimSpace(o.AzPath) == "" {
		o.AzPath = DefaultAzPath
	}
}

// Validate checks every field and reports all failures at once.
func (o *Options) Validate() ValidationErrors {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "options", Message: err.Error()}}
	}

	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value cannot be empty"
	case "oneof":
		return fmt.Sprintf("invalid value '%v', must be one of: %s", fe.Value(), strings.Join(OutputFormats, ", "))
	case "noctl":
		return "value contains control characters"
	default:
		return fmt.Sprintf("failed '%s' check", fe.Tag())
	}
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
