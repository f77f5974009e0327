package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError はusecaseからhandlerへ返すエラー。Errはログ用でレスポンスには出さない。
type HTTPError struct {
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 400 + 項目ごとのエラー
func NewValidationError(message string, fieldErrors []string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Errors:  fieldErrors,
	}
}

// 500。原因はErrに残す
func internalError(message string, err error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
