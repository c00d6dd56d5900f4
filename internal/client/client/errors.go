package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Message string
	Fields  []string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%d %s: %s (%s)", e.Status, http.StatusText(e.Status), e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Is maps status codes onto the shared sentinels so callers can use
// errors.Is(err, common.ErrorNotFound) and friends.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusNotFound:
		return target == common.ErrorNotFound
	case http.StatusConflict:
		return target == common.ErrorAlreadyExists
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusBadRequest:
		return target == common.ErrorValidation && len(e.Fields) > 0
	}
	return false
}
