package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ドメインエラーは固定値で持つ。errors.Isで判別できる。
// 永続化の失敗はErrDBで、ドメインエラーとは区別する。
var (
	ErrInvalidContext    = NewHTTPError(http.StatusBadRequest, "invalid context")
	ErrNotFound          = NewHTTPError(http.StatusNotFound, "not found")
	ErrItemNotFound      = NewHTTPError(http.StatusBadRequest, "item not found")
	ErrEmptyCart         = NewHTTPError(http.StatusBadRequest, "cart empty")
	ErrInvalidTransition = NewHTTPError(http.StatusConflict, "invalid transition")
	ErrDB                = NewHTTPError(http.StatusInternalServerError, "db error")
)
