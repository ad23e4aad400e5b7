package domain

import (
	"fmt"
	"strings"
)

// UserProfile is the editable profile document for a user. Stored in the
// remote document store under the user's identifier; PhotoURL points at
// the blob store object uploaded for the profile picture.
type UserProfile struct {
	FirstName string
	LastName  string
	Age       string
	PhotoURL  string
}

// DisplayName returns the name shown next to the user's reviews.
func (p UserProfile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return FallbackDisplayName
	}
	return name
}

// Validate checks the required profile fields before a save. Field-level
// failures are collected so the UI can show one message per input.
func (p UserProfile) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(p.FirstName) == "" {
		errs["first_name"] = "first name is required"
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs["last_name"] = "last name is required"
	}
	if strings.TrimSpace(p.Age) == "" {
		errs["age"] = "age is required"
	}
	return errs
}

// ValidateProfile wraps Validate in a single error for callers that do
// not render field-level messages.
func ValidateProfile(p UserProfile) error {
	errs := p.Validate()
	if len(errs) == 0 {
		return nil
	}
	var fields []string
	for _, f := range []string{"first_name", "last_name", "age"} {
		if _, ok := errs[f]; ok {
			fields = append(fields, f)
		}
	}
	return fmt.Errorf("%w: missing fields %s", ErrInvalidInput, strings.Join(fields, ", "))
}
