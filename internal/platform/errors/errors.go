package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("not found")
	ErrNoActiveSession        = errors.New("no active session")
	ErrInvalidTransition      = errors.New("invalid state transition")
	ErrNetworkUnavailable     = errors.New("network unavailable")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrValidationFailed       = errors.New("validation failed")
	ErrServer                 = errors.New("server error")
	ErrLocalStorageCorrupt    = errors.New("local storage corrupt")
	ErrMediaDeviceUnavailable = errors.New("media device unavailable")
	ErrPlaybackUnavailable    = errors.New("playback unavailable")
)

// Kind tags an APIError with the failure class it was built from.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
	KindUnexpected   Kind = "unexpected"
)

// APIError is the only error shape produced at the HTTP boundary.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []string
	Err     error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString("]")
	}
	if e.Err != nil && e.Message == "" {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error kind.
func (e *APIError) Is(target error) bool {
	switch e.Kind {
	case KindNetwork:
		return target == ErrNetworkUnavailable
	case KindUnauthorized:
		return target == ErrUnauthorized
	case KindValidation:
		return target == ErrValidationFailed
	case KindNotFound:
		return target == ErrNotFound
	case KindServer:
		return target == ErrServer
	}
	return false
}

// KindForStatus maps an HTTP status to an error kind.
func KindForStatus(status int) Kind {
	switch {
	case status == 400:
		return KindValidation
	case status == 401:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindUnexpected
	}
}

// AsAPIError extracts the APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
