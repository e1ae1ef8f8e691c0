package storage

import (
	"context"
	"time"
)

// DefaultKey is the fixed key the session token is stored under.
const DefaultKey = "stride_token"

// CredentialStore persists the single session token of a client.
//
// Get reports ok=false when no token is stored or the stored token has
// expired. Clear is idempotent.
type CredentialStore interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string, ttl time.Duration) error
	Clear(ctx context.Context) error
}
