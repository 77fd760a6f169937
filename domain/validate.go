package domain

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

// ValidateProfile gates estimation on the completeness invariant. The
// returned error wraps ErrIncompleteProfile and names the offending fields.
func ValidateProfile(p UserProfile) error {
	err := validate.Struct(p)
	if err == nil {
		if !p.Complete() {
			return fmt.Errorf("%w: skills", ErrIncompleteProfile)
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating profile: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrIncompleteProfile, strings.Join(fields, ", "))
}
