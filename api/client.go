package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

// Client issues authenticated requests against the backend resources.
type Client struct {
	session *Session
	tr      *transport
	logger  *log.Logger
}

// NewClient creates a Client that authenticates with the token held by session.
func NewClient(session *Session, opts Options) *Client {
	if session == nil {
		panic("api.NewClient: session is nil")
	}
	opts = opts.withDefaults()
	return &Client{session: session, tr: newTransport(opts), logger: opts.Logger}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// Do sends body (JSON-encoded when non-nil) to resource and decodes the
// response into out (skipped when out is nil).
//
// A 401 logs the session out and returns ErrSessionExpired. Other non-2xx
// responses return *RequestError with the message from the JSON error body
// when there is one. Undecodable success bodies return a *RequestError
// wrapping ErrMalformedData.
func (c *Client) Do(ctx context.Context, method, resource string, body, out any) error {
	return c.do(ctx, method, resource, resource, body, out)
}

func (c *Client) do(ctx context.Context, method, route, resource string, body, out any) error {
	ob := outbound{method: method, route: route, resource: resource}
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return &RequestError{Message: "invalid request body", Err: err}
		}
		ob.body = payload
		ob.contentType = "application/json"
	}
	// Without a token the request still goes out; the backend rejects it.
	if token, ok := c.session.Token(ctx); ok {
		ob.authorization = bearerAuthorization(token)
	}

	expired := false
	err := c.tr.roundTrip(ctx, ob, func(status int, data []byte) error {
		switch {
		case status == http.StatusUnauthorized:
			expired = true
			return ErrSessionExpired
		case !isSuccess(status):
			msg := decodeErrorMessage(data)
			if msg == "" {
				msg = genericMessage(status)
			}
			return &RequestError{Status: status, Message: msg}
		}
		if out == nil {
			return nil
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return malformedError(status, errors.New("empty body"))
		}
		if err := sonic.ConfigStd.Unmarshal(data, out); err != nil {
			return malformedError(status, err)
		}
		return nil
	})
	if expired {
		c.logger.WithField("route", route).Info("session rejected by backend, logging out")
		_ = c.session.Logout(context.WithoutCancel(ctx))
	}
	return err
}
