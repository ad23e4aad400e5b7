package domain

import (
	"fmt"
	"strings"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Credentials is an email/password pair for the auth provider. Local
// validation runs before any remote call; the provider never sees a
// malformed pair.
type Credentials struct {
	Email    string
	Password string
}

// ValidateEmail checks that the address is plausibly well formed.
// A full RFC 5322 parse is deliberately out of scope; the remote auth
// provider is the final authority.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	if !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	return nil
}

// Validate checks the pair for sign-in.
func (c Credentials) Validate() error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return nil
}

// ValidateRegistration checks the pair plus confirmation for sign-up.
func (c Credentials) ValidateRegistration(confirm string) error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if len(c.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if c.Password != confirm {
		return fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}
	return nil
}
