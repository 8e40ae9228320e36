// Package validation collects per-field failures for request shapes.
//
// Every input type exposes a Validate() error method built on Result so the
// rules can be exercised without any HTTP plumbing.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	pkgerrors "github.com/saikambala25/goat/pkg/errors"
)

// Reason enumerates why a field was rejected.
type Reason string

const (
	ReasonRequired     Reason = "required"
	ReasonTooShort     Reason = "too_short"
	ReasonTooLong      Reason = "too_long"
	ReasonInvalidEmail Reason = "invalid_email"
	ReasonInvalidValue Reason = "invalid_value"
	ReasonInvalidID    Reason = "invalid_id"
	ReasonNegative     Reason = "negative"
	ReasonEmpty        Reason = "empty"
)

var validate = validator.New()

// Failure describes a single rejected field.
type Failure struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// Result accumulates failures in the order rules were evaluated.
type Result struct {
	failures []Failure
}

func (r *Result) Add(field string, reason Reason, message string) {
	r.failures = append(r.failures, Failure{Field: field, Reason: reason, Message: message})
}

// Required records a failure when value is blank after trimming.
func (r *Result) Required(field, value string) bool {
	if err := validate.Var(strings.TrimSpace(value), "required"); err != nil {
		r.Add(field, ReasonRequired, fmt.Sprintf("%s is required", field))
		return false
	}
	return true
}

// MinLength checks the trimmed rune length of value.
func (r *Result) MinLength(field, value string, min int) bool {
	if err := validate.Var(strings.TrimSpace(value), fmt.Sprintf("min=%d", min)); err != nil {
		r.Add(field, ReasonTooShort, fmt.Sprintf("%s must be at least %d characters", field, min))
		return false
	}
	return true
}

// MaxBytes caps the encoded size of value, which is what hashing
// algorithms such as bcrypt limit.
func (r *Result) MaxBytes(field, value string, max int) bool {
	if len(value) > max {
		r.Add(field, ReasonTooLong, fmt.Sprintf("%s must be at most %d bytes", field, max))
		return false
	}
	return true
}

func (r *Result) Email(field, value string) bool {
	if err := validate.Var(strings.TrimSpace(value), "required,email"); err != nil {
		r.Add(field, ReasonInvalidEmail, fmt.Sprintf("%s must be a valid email", field))
		return false
	}
	return true
}

// UUID parses value and records a failure when it is not a uuid.
func (r *Result) UUID(field, value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		r.Add(field, ReasonInvalidID, fmt.Sprintf("%s must be a valid id", field))
		return uuid.Nil, false
	}
	return id, true
}

func (r *Result) NonNegative(field string, value float64) bool {
	if err := validate.Var(value, "gte=0"); err != nil {
		r.Add(field, ReasonNegative, fmt.Sprintf("%s must not be negative", field))
		return false
	}
	return true
}

// Nested folds another result in, prefixing its field names.
func (r *Result) Nested(prefix string, other Result) {
	for _, f := range other.failures {
		name := prefix
		if f.Field != "" {
			name = prefix + "." + f.Field
		}
		r.failures = append(r.failures, Failure{Field: name, Reason: f.Reason, Message: f.Message})
	}
}

func (r Result) OK() bool {
	return len(r.failures) == 0
}

func (r Result) Failures() []Failure {
	return append([]Failure(nil), r.failures...)
}

// Err converts the result into a typed validation error, or nil when no rule
// failed. The first failure becomes the public message.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	details := make(map[string]string, len(r.failures))
	for _, f := range r.failures {
		if _, exists := details[f.Field]; !exists {
			details[f.Field] = f.Message
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, r.failures[0].Message).WithDetails(details)
}
