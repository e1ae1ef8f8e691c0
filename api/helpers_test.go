package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var testSecret = []byte("test-secret")

// testToken mints an HS256 token the way the backend does.
func testToken(t *testing.T, sub string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

type capturedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	ContentType   string
}

type fakeBackend struct {
	*echo.Echo
	server *httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{Echo: echo.New()}
	fb.HideBanner = true
	fb.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			fb.mu.Lock()
			fb.requests = append(fb.requests, capturedRequest{
				Method:        req.Method,
				Path:          req.URL.EscapedPath(),
				Authorization: req.Header.Get(echo.HeaderAuthorization),
				RequestID:     req.Header.Get(headerRequestID),
				ContentType:   req.Header.Get(echo.HeaderContentType),
			})
			fb.mu.Unlock()
			return next(c)
		}
	})
	fb.server = httptest.NewServer(fb.Echo)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) BaseURL() string {
	return fb.server.URL + "/api"
}

func (fb *fakeBackend) Requests() []capturedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]capturedRequest, len(fb.requests))
	copy(out, fb.requests)
	return out
}

func (fb *fakeBackend) LastRequest(t *testing.T) capturedRequest {
	t.Helper()
	reqs := fb.Requests()
	if len(reqs) == 0 {
		t.Fatalf("expected at least one request to reach the backend")
	}
	return reqs[len(reqs)-1]
}

// recordingStore is a CredentialStore fake that records calls.
type recordingStore struct {
	mu      sync.Mutex
	token   string
	ttl     time.Duration
	sets    int
	clears  int
	getErr  error
	clearFn func() error
}

func (r *recordingStore) Get(context.Context) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return "", false, r.getErr
	}
	return r.token, r.token != "", nil
}

func (r *recordingStore) Set(_ context.Context, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
	r.ttl = ttl
	r.sets++
	return nil
}

func (r *recordingStore) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
	r.token = ""
	if r.clearFn != nil {
		return r.clearFn()
	}
	return nil
}

func (r *recordingStore) snapshot() (string, time.Duration, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token, r.ttl, r.sets, r.clears
}

func newTestLogger() (*log.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return logger, hook
}

func newTestSession(t *testing.T, fb *fakeBackend, store *recordingStore) (*Session, *Client) {
	t.Helper()
	logger, _ := newTestLogger()
	opts := Options{BaseURL: fb.BaseURL(), Logger: logger, Timeout: 5 * time.Second}
	session := NewSession(store, opts)
	return session, NewClient(session, opts)
}

func mustKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if got := KindOf(err); got != want {
		t.Fatalf("expected error kind %s, got %s (err=%v)", want, got, err)
	}
}

func requireRequestError(t *testing.T, err error) *RequestError {
	t.Helper()
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	return reqErr
}

func loginHandler(email, password, token string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, pass, ok := c.Request().BasicAuth()
		if !ok || user != email || pass != password {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Bad credentials for " + user})
		}
		return c.String(http.StatusOK, token)
	}
}
