package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")
)

// APIError is a non-2xx answer from the API. Message and Detail carry the
// "message" and "error" fields of the response body when present.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Detail != "":
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Detail)
	case e.Message != "":
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	case e.Detail != "":
		return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}
