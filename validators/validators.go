// Package validators holds the input contracts for registration, login and
// organizer applications. Every function is pure: a failure never reaches storage.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/tournament-platform/models"
)

// FieldErrors maps a JSON field name to a human readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsFieldErrors extracts FieldErrors from err, if any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password_strength", passwordStrength); err != nil {
		panic(err)
	}
	return v
}

func passwordStrength(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword reports whether s holds at least one lowercase letter,
// one uppercase letter and one digit.
func IsStrongPassword(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// messages keyed by "<field>.<tag>"; the fallback is built from the tag.
var messages = map[string]string{
	"email.required":              "Email is required",
	"email.email":                 "Please enter a valid email address",
	"password.required":           "Password is required",
	"password.min":                "Password must be at least 8 characters",
	"password.password_strength":  "Password must contain at least one uppercase letter, one lowercase letter, and one number",
	"name.required":               "Name must be at least 2 characters",
	"name.min":                    "Name must be at least 2 characters",
	"role.required":               "Please select a role",
	"role.oneof":                  "Please select a valid role",
	"application_reason.required": "Please provide at least 10 characters explaining why you want to be an organizer",
	"application_reason.min":      "Please provide at least 10 characters explaining why you want to be an organizer",
	"application_reason.max":      "Application reason must be less than 500 characters",
	"experience_description.max":  "Experience description must be at most 1000 characters",
	"status.required":             "Status is required",
	"status.oneof":                "Status must be approved or rejected",
	"admin_notes.max":             "Admin notes must be at most 1000 characters",
}

func run(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := make(FieldErrors, len(verrs))
	for _, ve := range verrs {
		field := ve.Field()
		if _, seen := fe[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+ve.Tag()]; ok {
			fe[field] = msg
			continue
		}
		fe[field] = fmt.Sprintf("failed on the '%s' rule", ve.Tag())
	}
	return fe
}

func ValidateRegister(in models.RegisterInput) error {
	return run(in)
}

func ValidateLogin(in models.LoginInput) error {
	return run(in)
}

func ValidateProfile(in models.ProfileInput) error {
	return run(in)
}

// ValidateApplication checks application_reason (10..500 characters) and the
// optional experience_description (up to 1000 characters). Lengths are counted
// on the text as submitted; a reason made only of whitespace is rejected.
func ValidateApplication(in models.ApplicationInput) error {
	if err := run(in); err != nil {
		return err
	}
	if strings.TrimSpace(in.ApplicationReason) == "" {
		return FieldErrors{"application_reason": messages["application_reason.required"]}
	}
	return nil
}

func ValidateReview(in models.ReviewInput) error {
	return run(in)
}
