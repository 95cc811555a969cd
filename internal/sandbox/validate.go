package sandbox

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors validates req and returns the failures keyed by JSON field
// name, or nil when req is valid.
func fieldErrors(req any) map[string][]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"non_field_errors": {err.Error()}}
	}

	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est obligatoire."
	case "email":
		return "Saisissez une adresse e-mail valide."
	case "min":
		return fmt.Sprintf("Ce champ doit contenir au moins %s caractères.", fe.Param())
	case "gte":
		return fmt.Sprintf("Assurez-vous que cette valeur est supérieure ou égale à %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Choisissez une valeur parmi : %s.", fe.Param())
	default:
		return "Valeur invalide."
	}
}
