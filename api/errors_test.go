package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "authentication", err: ErrAuthentication, want: KindAuthentication},
		{name: "registration with message", err: fmt.Errorf("%w: email taken", ErrRegistration), want: KindRegistration},
		{name: "expired", err: ErrSessionExpired, want: KindSessionExpired},
		{name: "request", err: &RequestError{Status: http.StatusForbidden, Message: "no"}, want: KindRequest},
		{name: "malformed", err: malformedError(http.StatusOK, errors.New("eof")), want: KindMalformedData},
		{name: "transport", err: &RequestError{Message: "network error", Err: errors.New("dial tcp")}, want: KindTransport},
		{name: "canceled", err: &RequestError{Message: "request canceled", Err: context.Canceled}, want: KindTransport},
		{name: "invalid argument", err: fmt.Errorf("%w: project id is required", ErrInvalidArgument), want: KindInvalidArgument},
		{name: "foreign", err: errors.New("disk full"), want: KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestRequestErrorMessage(t *testing.T) {
	withStatus := &RequestError{Status: http.StatusNotFound, Message: "Not Found"}
	if got := withStatus.Error(); got != "request failed (404): Not Found" {
		t.Fatalf("unexpected message %q", got)
	}
	transport := &RequestError{Message: "network error", Err: errors.New("dial tcp")}
	if got := transport.Error(); got != "request failed: network error" {
		t.Fatalf("unexpected message %q", got)
	}
	if !errors.Is(malformedError(http.StatusOK, errors.New("bad json")), ErrMalformedData) {
		t.Fatalf("malformed error must unwrap to ErrMalformedData")
	}
}

func TestGenericMessage(t *testing.T) {
	if got := genericMessage(http.StatusBadGateway); got != "Bad Gateway" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := genericMessage(599); got != "request failed" {
		t.Fatalf("unexpected message %q", got)
	}
}
