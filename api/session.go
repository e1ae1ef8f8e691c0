package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"stride-client/storage"
)

// Session owns the login state of the process. Create one per process and
// share it; it is the only component that writes the credential store.
type Session struct {
	store     storage.CredentialStore
	tr        *transport
	logger    *log.Logger
	loginPath string
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	onLogout []func()
}

// NewSession creates a Session persisting tokens in store.
func NewSession(store storage.CredentialStore, opts Options) *Session {
	if store == nil {
		panic("api.NewSession: credential store is nil")
	}
	opts = opts.withDefaults()
	return &Session{
		store:     store,
		tr:        newTransport(opts),
		logger:    opts.Logger,
		loginPath: opts.LoginPath,
		ttl:       DefaultTokenTTL,
		now:       time.Now,
	}
}

// OnLogout registers fn to run after every logout, including the forced
// logout that follows a 401. The view layer uses it to return to the login
// entry point.
func (s *Session) OnLogout(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Login exchanges email and password for a token using basic credentials.
// Any non-2xx response yields ErrAuthentication and nothing else.
func (s *Session) Login(ctx context.Context, email, password string) (string, error) {
	out := outbound{
		method:        http.MethodPost,
		route:         s.loginPath,
		resource:      s.loginPath,
		authorization: basicAuthorization(email, password),
	}
	return s.exchange(ctx, out, func(int, []byte) error { return ErrAuthentication })
}

// Register creates an account and starts a session for it.
func (s *Session) Register(ctx context.Context, email, password, fullName string) (string, error) {
	body, err := sonic.Marshal(registerRequest{Email: email, Password: password, FullName: fullName})
	if err != nil {
		return "", fmt.Errorf("api: encode registration: %w", err)
	}
	out := outbound{
		method:      http.MethodPost,
		route:       routeRegister,
		resource:    routeRegister,
		contentType: "application/json",
		body:        body,
	}
	return s.exchange(ctx, out, func(status int, data []byte) error {
		if msg := decodeErrorMessage(data); msg != "" {
			return fmt.Errorf("%w: %s", ErrRegistration, msg)
		}
		return ErrRegistration
	})
}

func (s *Session) exchange(ctx context.Context, out outbound, rejected func(status int, body []byte) error) (string, error) {
	var token string
	err := s.tr.roundTrip(ctx, out, func(status int, body []byte) error {
		if !isSuccess(status) {
			return rejected(status, body)
		}
		token = strings.TrimSpace(string(body))
		if token == "" {
			return malformedError(status, errors.New("empty token"))
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	ttl := tokenTTL(token, s.ttl, s.now())
	if err := s.store.Set(ctx, token, ttl); err != nil {
		return "", fmt.Errorf("api: persist token: %w", err)
	}
	s.logger.WithFields(log.Fields{"route": out.route, "ttl": ttl.String()}).Debug("session.started")
	return token, nil
}

// Logout clears the stored token and runs the logout hooks. It is safe to
// call without an active session. The store error, if any, is returned after
// the hooks have run.
func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("session.logout: clear credential store")
	}

	s.mu.Lock()
	hooks := make([]func(), len(s.onLogout))
	copy(hooks, s.onLogout)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	s.logger.Debug("session.ended")
	return err
}

// Token returns the current token. Store failures are logged and reported
// as no token.
func (s *Session) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.store.Get(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("session: read credential store")
		return "", false
	}
	return token, ok
}

func decodeErrorMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var body errorResponse
	if err := sonic.ConfigStd.Unmarshal(data, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Error)
}
