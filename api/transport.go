package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL points at a locally running backend.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds every request issued by Session and Client.
	DefaultTimeout = 15 * time.Second
)

// Options configures the HTTP side of Session and Client.
type Options struct {
	BaseURL        string
	LoginPath      string
	HTTPClient     *http.Client
	Timeout        time.Duration
	Logger         *log.Logger
	TracerProvider trace.TracerProvider
}

func (o Options) withDefaults() Options {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.LoginPath == "" {
		o.LoginPath = routeLogin
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = log.StandardLogger()
	}
	if o.TracerProvider == nil {
		o.TracerProvider = otel.GetTracerProvider()
	}
	return o
}

type transport struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *log.Logger
	tracer  trace.Tracer
}

func newTransport(opts Options) *transport {
	return &transport{
		baseURL: opts.BaseURL,
		http:    opts.HTTPClient,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		tracer:  opts.TracerProvider.Tracer(instrumentationName),
	}
}

type outbound struct {
	method        string
	route         string
	resource      string
	authorization string
	contentType   string
	body          []byte
}

// roundTrip issues a single request and hands the status and body to handle,
// whose result becomes the result of the call. It never retries.
func (t *transport) roundTrip(ctx context.Context, out outbound, handle func(status int, body []byte) error) (err error) {
	requestID := uuid.NewString()
	metrics, ctx := newRequestMetrics(ctx, t.tracer, t.logger, out.method, out.route, requestID)
	status := 0
	defer func() {
		metrics.Finish(status, err)
	}()

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var reader io.Reader
	if out.body != nil {
		reader = bytes.NewReader(out.body)
	}
	req, err := http.NewRequestWithContext(ctx, out.method, t.baseURL+out.resource, reader)
	if err != nil {
		return &RequestError{Message: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set(headerRequestID, requestID)
	if out.contentType != "" {
		req.Header.Set("Content-Type", out.contentType)
	}
	if out.authorization != "" {
		req.Header.Set("Authorization", out.authorization)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return &RequestError{Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	metrics.SetResponseBytes(len(data))
	if err != nil {
		return &RequestError{Status: status, Message: "failed to read response", Err: err}
	}
	if len(data) > maxResponseSize {
		return &RequestError{Status: status, Message: "response too large", Err: ErrResponseTooLarge}
	}
	return handle(status, data)
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return "network error"
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
