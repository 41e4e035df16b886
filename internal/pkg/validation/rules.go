package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateFormat is the accepted calendar date layout for request payloads
const DateFormat = "2006-01-02"

var validate = validator.New()

// Errors collects per-field validation messages for one request. All
// rules run before the result is inspected, so the caller gets every
// violated field, not only the first.
type Errors struct {
	fields map[string][]string
}

// NewErrors creates an empty collector
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add records a violation message for a field
func (e *Errors) Add(field, message string) {
	e.fields[field] = append(e.fields[field], message)
}

// Has reports whether any rule failed
func (e *Errors) Has() bool {
	return len(e.fields) > 0
}

// Fields returns the collected messages keyed by field name
func (e *Errors) Fields() map[string][]string {
	return e.fields
}

// label humanizes a field name for messages ("date_of_birth" -> "date of birth")
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// Required checks a string field is present and non-blank. Returns
// false when the field is missing so dependent rules can be skipped.
func (e *Errors) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, fmt.Sprintf("The %s field is required.", label(field)))
		return false
	}
	return true
}

// MaxLen checks a string does not exceed max characters
func (e *Errors) MaxLen(field, value string, max int) {
	if len(value) > max {
		e.Add(field, fmt.Sprintf("The %s may not be greater than %d characters.", label(field), max))
	}
}

// MinLen checks a string is at least min characters
func (e *Errors) MinLen(field, value string, min int) {
	if len(value) < min {
		e.Add(field, fmt.Sprintf("The %s must be at least %d characters.", label(field), min))
	}
}

// Email checks a string is a well-formed email address
func (e *Errors) Email(field, value string) {
	if err := validate.Var(value, "email"); err != nil {
		e.Add(field, fmt.Sprintf("The %s must be a valid email address.", label(field)))
	}
}

// Date parses a calendar date in DateFormat. The zero time and false
// are returned when the value does not parse.
func (e *Errors) Date(field, value string) (time.Time, bool) {
	parsed, err := time.Parse(DateFormat, value)
	if err != nil {
		e.Add(field, fmt.Sprintf("The %s is not a valid date.", label(field)))
		return time.Time{}, false
	}
	return parsed, true
}

// Taken records a uniqueness violation for a field
func (e *Errors) Taken(field string) {
	e.Add(field, fmt.Sprintf("The %s has already been taken.", label(field)))
}
