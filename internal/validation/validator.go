package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"bio-kids-puzzles/internal/domain"

	"github.com/go-playground/validator/v10"
)

// validULID matches Crockford's Base32 ULIDs
var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request and catalog validation
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{validate: v}
}

// ValidateStruct runs the struct's validate tags and converts failures into
// domain.ValidationErrors. It returns nil when s is valid.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewValidationError("", err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toDomainError(fe))
	}
	return out
}

func toDomainError(fe validator.FieldError) domain.ValidationError {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "oneof", "unique":
		return domain.NewInvalidFormatError(field, fe.Value())
	case "min", "max", "gt", "gte", "lt", "lte":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param()),
			Value:   fe.Value(),
		}
	default:
		return domain.NewValidationError(field, fmt.Sprintf("failed %s validation", fe.Tag()))
	}
}

// fieldPath drops the top-level struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidateLevelID parses and validates a level id path parameter
func (v *Validator) ValidateLevelID(raw string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("level_id")}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("level_id", raw)}
	}
	if id <= 0 {
		return 0, domain.ValidationErrors{domain.NewValidationError("level_id", "must be a positive integer")}
	}
	return id, nil
}

// ValidateSessionID validates a session id path parameter
func (v *Validator) ValidateSessionID(raw string) domain.ValidationErrors {
	if strings.TrimSpace(raw) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("session_id")}
	}
	if !validULID.MatchString(raw) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("session_id", raw)}
	}
	return nil
}
