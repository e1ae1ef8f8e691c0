package board

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"stride-client/domain"
)

// ErrSuperseded is returned by Load when a newer load started before this
// one finished. Its result is discarded.
var ErrSuperseded = errors.New("board: load superseded by a newer request")

// Fetcher retrieves the work items of a project. *api.Client satisfies it.
type Fetcher interface {
	ListWorkItems(ctx context.Context, ref domain.ProjectRef) ([]domain.WorkItem, error)
}

// Loader fetches work items and publishes the aggregated board. Only the
// most recently started load may publish; earlier in-flight loads are
// canceled.
type Loader struct {
	fetcher Fetcher
	logger  *log.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	items   []domain.WorkItem
	current Board
	loaded  bool
}

// NewLoader creates a Loader fetching through fetcher.
func NewLoader(fetcher Fetcher, logger *log.Logger) *Loader {
	if fetcher == nil {
		panic("board.NewLoader: fetcher is nil")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load fetches the items of ref and aggregates them with query. Fetch errors
// are returned unchanged and leave the published board untouched.
func (l *Loader) Load(ctx context.Context, ref domain.ProjectRef, query string) (Board, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	l.cancel = cancel
	l.mu.Unlock()

	items, err := l.fetcher.ListWorkItems(ctx, ref)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		l.logger.WithFields(log.Fields{
			"workspace_id": ref.WorkspaceID,
			"project_id":   ref.ProjectID,
			"seq":          seq,
		}).Debug("board.load.superseded")
		return Board{}, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		return Board{}, err
	}

	b := Aggregate(items, query)
	l.items = items
	l.current = b
	l.loaded = true
	l.logger.WithFields(log.Fields{
		"workspace_id": ref.WorkspaceID,
		"project_id":   ref.ProjectID,
		"items":        len(items),
		"visible":      b.Count(),
	}).Debug("board.loaded")
	return b, nil
}

// Current returns the last published board and whether one exists.
func (l *Loader) Current() (Board, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.loaded
}

// Filter re-aggregates the last fetched items with query without fetching.
// It reports false when nothing has been loaded yet.
func (l *Loader) Filter(query string) (Board, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return Board{}, false
	}
	l.current = Aggregate(l.items, query)
	return l.current, true
}
