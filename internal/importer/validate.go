package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ValidationError reports every problem found in a document at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return e.Problems[0]
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var planValidate = validator.New(validator.WithRequiredStructEnabled())

// ValidatePlan checks field-level constraints on a decoded plan: required
// identifiers, non-negative bounds, steps and IPR magnitudes.
func ValidatePlan(p *domain.Plan) error {
	err := planValidate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating plan: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

func describeFieldError(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", path, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q check", path, fe.Tag())
	}
}
