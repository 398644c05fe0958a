package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorModel is the body of every error response.
type ErrorModel struct {
	status int

	Message string   `json:"message" example:"validation failed"`
	Errors  []string `json:"errors,omitempty"`
}

var _ huma.StatusError = (*ErrorModel)(nil)

func (e *ErrorModel) Error() string  { return e.Message }
func (e *ErrorModel) GetStatus() int { return e.status }

// NewError is meant to replace [huma.NewError].
//
// Request validation failures are reported as 400 instead of 422.
// Server errors carry a generic message and never the underlying errors.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError {
		return &ErrorModel{status: status, Message: strings.ToLower(http.StatusText(status))}
	}

	model := &ErrorModel{status: status, Message: msg}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) {
			model.Errors = append(model.Errors, detail.Location+": "+detail.Message)
		} else {
			model.Errors = append(model.Errors, err.Error())
		}
	}
	return model
}
