package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// FileStore persists the token as a small JSON document readable only by the
// current user, so a command-line session survives between invocations.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

type fileEntry struct {
	Key       string    `json:"key"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the location of the backing file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	var entry fileEntry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		// A corrupt file is treated like a missing session.
		_ = os.Remove(f.path)
		return "", false, nil
	}
	if entry.Token == "" {
		return "", false, nil
	}
	if !entry.ExpiresAt.IsZero() && !f.now().Before(entry.ExpiresAt) {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("storage: remove expired %s: %w", f.path, err)
		}
		return "", false, nil
	}
	return entry.Token, true, nil
}

func (f *FileStore) Set(_ context.Context, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry := fileEntry{Key: DefaultKey, Token: token}
	if ttl > 0 {
		entry.ExpiresAt = f.now().Add(ttl).UTC()
	}
	data, err := sonic.Marshal(entry)
	if err != nil {
		return fmt.Errorf("storage: encode token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("storage: ensure dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("storage: replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", f.path, err)
	}
	return nil
}
