// error.go - Maps domain errors to HTTP responses

package response

import (
	"errors"
	"net/http"

	"go-task-backend/auth"
	"go-task-backend/kv"

	"github.com/gin-gonic/gin"
)

// Error is an error that already knows its HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NewValidationError(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func NewUnauthorizedError() *Error {
	return NewError(http.StatusUnauthorized, "unauthorized")
}

func NewNotFoundError(what string) *Error {
	return NewError(http.StatusNotFound, what+" not found")
}

func NewInternalError() *Error {
	return NewError(http.StatusInternalServerError, "internal server error")
}

// Resolve turns any error into a response Error. Unknown errors become a generic 500.
func Resolve(err error) *Error {
	var re *Error
	switch {
	case errors.As(err, &re):
		return re
	case errors.Is(err, kv.ErrNotFound), errors.Is(err, auth.ErrUserNotFound):
		return NewNotFoundError("record")
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		return NewValidationError(err.Error())
	default:
		return NewInternalError()
	}
}

// HandleError writes err as {"error": message} and aborts the chain.
func HandleError(c *gin.Context, err error) {
	re := Resolve(err)
	c.AbortWithStatusJSON(re.Status, gin.H{"error": re.Message})
}
