package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

type Credentials struct {
	Username string
	Password string
}

// Validate проверяет форму до любого сетевого вызова.
func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Username)) < MinUsernameLen {
		return ErrUsernameTooShort
	}
	if utf8.RuneCountInString(c.Password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// Clean обрезает пробелы вокруг имени, пароль не трогает.
func (c Credentials) Clean() Credentials {
	return Credentials{Username: strings.TrimSpace(c.Username), Password: c.Password}
}

type Registration struct {
	Credentials
	Confirm string
}

func (r Registration) Validate() error {
	if r.Password != r.Confirm {
		return ErrPasswordMismatch
	}
	return r.Credentials.Validate()
}
