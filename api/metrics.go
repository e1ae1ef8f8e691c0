package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "stride-client/api"
	requestSpanName     = "stride.api.request"
	requestLogMessage   = "api.request"
)

type requestMetrics struct {
	logger        *log.Logger
	span          trace.Span
	start         time.Time
	method        string
	route         string
	requestID     string
	responseBytes int
}

func newRequestMetrics(ctx context.Context, tracer trace.Tracer, logger *log.Logger, method, route, requestID string) (*requestMetrics, context.Context) {
	m := &requestMetrics{
		logger:    logger,
		start:     time.Now(),
		method:    method,
		route:     route,
		requestID: requestID,
	}
	if tracer != nil {
		ctx, m.span = tracer.Start(ctx, requestSpanName,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.method", method),
				attribute.String("http.route", route),
				attribute.String("stride.request_id", requestID),
			),
		)
	}
	return m, ctx
}

func (m *requestMetrics) SetResponseBytes(n int) {
	if n < 0 {
		n = 0
	}
	m.responseBytes = n
}

// Finish ends the span and emits one log entry for the request.
func (m *requestMetrics) Finish(status int, err error) {
	if m == nil {
		return
	}
	kind := KindOf(err)
	totalMs := durationToMillis(time.Since(m.start))

	if m.span != nil {
		m.span.SetAttributes(
			attribute.Float64("stride.request.total_ms", totalMs),
			attribute.Int("stride.response.bytes", m.responseBytes),
		)
		if status > 0 {
			m.span.SetAttributes(attribute.Int("http.status_code", status))
		}
		if err != nil {
			m.span.SetAttributes(attribute.String("stride.error_kind", kind.String()))
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, kind.String())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"route":          m.route,
		"method":         m.method,
		"status":         status,
		"request_id":     m.requestID,
		"total_ms":       totalMs,
		"response_bytes": m.responseBytes,
	}
	if err != nil {
		fields["error_kind"] = kind.String()
		fields["error"] = err.Error()
	}
	m.logger.WithFields(fields).Log(levelForStatus(status, err), requestLogMessage)
}

func levelForStatus(status int, err error) log.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return log.ErrorLevel
	case status == 0 && err != nil:
		return log.ErrorLevel
	case status >= http.StatusBadRequest || err != nil:
		return log.WarnLevel
	default:
		return log.DebugLevel
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
