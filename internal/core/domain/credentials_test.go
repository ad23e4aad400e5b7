package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "plain address", email: "reader@example.com", wantErr: false},
		{name: "subdomain", email: "a@mail.example.co", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "example.com", wantErr: true},
		{name: "missing local part", email: "@example.com", wantErr: true},
		{name: "missing domain", email: "reader@", wantErr: true},
		{name: "domain without dot", email: "reader@localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentials_ValidateRegistration(t *testing.T) {
	c := Credentials{Email: "reader@example.com", Password: "secret1"}

	assert.NoError(t, c.ValidateRegistration("secret1"))
	assert.ErrorIs(t, c.ValidateRegistration("different"), ErrInvalidInput)

	short := Credentials{Email: "reader@example.com", Password: "abc"}
	assert.ErrorIs(t, short.ValidateRegistration("abc"), ErrInvalidInput)
}

func TestCredentials_Validate(t *testing.T) {
	assert.NoError(t, Credentials{Email: "reader@example.com", Password: "x"}.Validate())
	assert.ErrorIs(t, Credentials{Email: "reader@example.com"}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, Credentials{Email: "bad", Password: "x"}.Validate(), ErrInvalidInput)
}
