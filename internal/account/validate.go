package account

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var reasons = map[string]string{
	"required": "champ obligatoire",
	"email":    "adresse e-mail invalide",
	"max":      "valeur trop longue",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	return v
}

// strongPassword requires at least eight characters mixing lower case,
// upper case and digits.
func strongPassword(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return len([]rune(s)) >= 8 && lower && upper && digit
}

// fieldError converts the first validator failure into a FieldError.
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "strong_password":
		return &FieldError{Field: fe.Field(), Reason: ErrWeakPassword.Error(), Err: ErrWeakPassword}
	case "eqfield":
		return &FieldError{Field: fe.Field(), Reason: ErrPasswordMismatch.Error(), Err: ErrPasswordMismatch}
	}

	reason, ok := reasons[fe.Tag()]
	if !ok {
		reason = "valeur invalide"
	}
	return &FieldError{Field: fe.Field(), Reason: reason, Err: err}
}
