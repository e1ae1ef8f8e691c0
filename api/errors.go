package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthentication is returned when the backend rejects login credentials.
	ErrAuthentication = errors.New("invalid credentials")
	// ErrRegistration is returned when the backend rejects a registration.
	ErrRegistration = errors.New("registration failed")
	// ErrSessionExpired is returned when a previously issued token is rejected.
	// The stored token has already been cleared; retrying without logging in
	// again is pointless.
	ErrSessionExpired = errors.New("session expired")
	// ErrMalformedData marks a response body that could not be decoded.
	ErrMalformedData = errors.New("malformed response body")
	// ErrInvalidArgument is returned before any I/O when a required
	// identifier is blank.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrResponseTooLarge marks a response body over the client's size limit.
	ErrResponseTooLarge = errors.New("response body exceeds size limit")
)

const malformedMessage = "received malformed data from the server"

// RequestError describes a failed request. Status is 0 for transport
// failures that never produced an HTTP response.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return "request failed: " + e.Message
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func genericMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "request failed"
}

func malformedError(status int, cause error) *RequestError {
	return &RequestError{Status: status, Message: malformedMessage, Err: fmt.Errorf("%w: %v", ErrMalformedData, cause)}
}

// ErrorKind classifies errors returned by Session and Client so callers can
// switch on the kind instead of inspecting messages.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindAuthentication
	KindRegistration
	KindSessionExpired
	KindRequest
	KindMalformedData
	KindTransport
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuthentication:
		return "authentication"
	case KindRegistration:
		return "registration"
	case KindSessionExpired:
		return "session_expired"
	case KindRequest:
		return "request"
	case KindMalformedData:
		return "malformed_data"
	case KindTransport:
		return "transport"
	case KindInvalidArgument:
		return "invalid_argument"
	}
	return "unknown"
}

// KindOf reports the kind of err. Errors not produced by this package are
// reported as KindTransport.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrSessionExpired):
		return KindSessionExpired
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrRegistration):
		return KindRegistration
	case errors.Is(err, ErrMalformedData):
		return KindMalformedData
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Status != 0 {
		return KindRequest
	}
	return KindTransport
}
