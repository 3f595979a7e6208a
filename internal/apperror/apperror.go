// Package apperror defines the error taxonomy shared by all features.
// Every error produced by a service or repository is either one of the
// sentinel values below or wraps one of the typed constructors, so the
// top-level HTTP error handler can map it to a status code.
package apperror

import "github.com/gofiber/fiber/v2"

// Error is an application error carrying the HTTP status it maps to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidationErrors carries one message per failed field, returned as an
// array in the response envelope.
type ValidationErrors struct {
	Messages []string
}

func (e *ValidationErrors) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return e.Messages[0]
}

func NewValidation(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

func NewAuthentication(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Message: message}
}

// NewToken reports an invalid or expired reset token. It maps to 400 so
// the caller cannot tell an expired token from a never-issued one.
func NewToken(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: message}
}

var (
	ErrIncorrectCredentials = NewAuthentication("Incorrect email or password.")
	ErrUnauthorized         = NewAuthentication("You are not authorized to access this resource.")
	ErrEmailExists          = NewValidation("Email address already exists.")
	ErrUserNotFound         = NewNotFound("User was not found.")
	ErrContactExists        = NewValidation("Contact with provided email address already exists.")
	ErrContactNotFound      = NewNotFound("Contact was not found.")
	ErrInvalidResetToken    = NewToken("Password reset token is invalid or has expired.")
	ErrPasswordMismatch     = NewValidation("Passwords do not match.")
	ErrIncorrectOldPassword = NewValidation("Old password is incorrect.")
	ErrImageNotProvided     = NewValidation("Image was not provided.")
	ErrImageTooLarge        = NewValidation("Image must not be larger than 5MB.")
	ErrInvalidImageType     = NewValidation("Image must be one of .jpeg, .jpg, .png, .gif.")
)
