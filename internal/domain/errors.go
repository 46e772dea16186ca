package domain

// ValidationError — ошибка формы, текст показывается пользователю как есть.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrMissingCredentials ValidationError = "Please enter both username and password."
	ErrUsernameTooShort   ValidationError = "Username must be at least 3 characters long."
	ErrPasswordTooShort   ValidationError = "Password must be at least 6 characters long."
	ErrPasswordMismatch   ValidationError = "Passwords don't match!"
	ErrEmptyMessage       ValidationError = "Please enter a message before sending."
)
