package board

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"stride-client/api"
	"stride-client/domain"
	"stride-client/storage"
)

type mockFetcher struct {
	listFn func(ctx context.Context, ref domain.ProjectRef) ([]domain.WorkItem, error)
}

func (m *mockFetcher) ListWorkItems(ctx context.Context, ref domain.ProjectRef) ([]domain.WorkItem, error) {
	return m.listFn(ctx, ref)
}

func newTestLoader(fetcher Fetcher) (*Loader, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return NewLoader(fetcher, logger), hook
}

var projectA = domain.ProjectRef{WorkspaceID: "w", ProjectID: "a"}

func TestLoaderPublishesAggregatedBoard(t *testing.T) {
	loader, _ := newTestLoader(&mockFetcher{listFn: func(context.Context, domain.ProjectRef) ([]domain.WorkItem, error) {
		return sampleItems(), nil
	}})

	if _, ok := loader.Current(); ok {
		t.Fatalf("expected no board before the first load")
	}
	b, err := loader.Load(context.Background(), projectA, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := ids(b.Column(domain.StatusTodo)); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Fatalf("unexpected TODO column %v", got)
	}
	current, ok := loader.Current()
	if !ok || !reflect.DeepEqual(current, b) {
		t.Fatalf("expected current board to match the loaded one")
	}
}

func TestLoaderFilterDoesNotFetch(t *testing.T) {
	calls := 0
	loader, _ := newTestLoader(&mockFetcher{listFn: func(context.Context, domain.ProjectRef) ([]domain.WorkItem, error) {
		calls++
		return sampleItems(), nil
	}})

	if _, ok := loader.Filter("bug"); ok {
		t.Fatalf("filter before load must report false")
	}
	if _, err := loader.Load(context.Background(), projectA, ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	filtered, ok := loader.Filter("BUG")
	if !ok {
		t.Fatalf("expected filter to succeed after load")
	}
	if got := ids(filtered.Column(domain.StatusTodo)); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("unexpected filtered column %v", got)
	}
	if calls != 1 {
		t.Fatalf("expected a single fetch, got %d", calls)
	}
	if current, _ := loader.Current(); current.Count() != 1 {
		t.Fatalf("expected current board to reflect the filter")
	}
}

func TestLoaderFetchErrorKeepsPreviousBoard(t *testing.T) {
	fail := false
	boom := errors.New("backend down")
	loader, _ := newTestLoader(&mockFetcher{listFn: func(context.Context, domain.ProjectRef) ([]domain.WorkItem, error) {
		if fail {
			return nil, boom
		}
		return sampleItems(), nil
	}})

	if _, err := loader.Load(context.Background(), projectA, ""); err != nil {
		t.Fatalf("load: %v", err)
	}
	fail = true
	if _, err := loader.Load(context.Background(), projectA, ""); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if current, ok := loader.Current(); !ok || current.Count() != 3 {
		t.Fatalf("expected previous board to remain published")
	}
}

func TestLoaderLastStartedLoadWins(t *testing.T) {
	started := make(chan struct{})
	slowCanceled := make(chan struct{})
	loader, hook := newTestLoader(&mockFetcher{listFn: func(ctx context.Context, ref domain.ProjectRef) ([]domain.WorkItem, error) {
		if ref.ProjectID == "slow" {
			close(started)
			<-ctx.Done()
			close(slowCanceled)
			return []domain.WorkItem{{ID: "stale", Status: domain.StatusTodo}}, nil
		}
		return []domain.WorkItem{{ID: "fresh", Status: domain.StatusDone}}, nil
	}})

	slowErr := make(chan error, 1)
	go func() {
		_, err := loader.Load(context.Background(), domain.ProjectRef{WorkspaceID: "w", ProjectID: "slow"}, "")
		slowErr <- err
	}()
	<-started

	fresh, err := loader.Load(context.Background(), domain.ProjectRef{WorkspaceID: "w", ProjectID: "fast"}, "")
	if err != nil {
		t.Fatalf("fresh load: %v", err)
	}
	if got := ids(fresh.Column(domain.StatusDone)); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Fatalf("unexpected fresh board %v", got)
	}

	select {
	case <-slowCanceled:
	case <-time.After(time.Second):
		t.Fatalf("expected the superseded fetch to be canceled")
	}
	select {
	case err := <-slowErr:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("superseded load did not return")
	}

	current, _ := loader.Current()
	if got := ids(current.Column(domain.StatusDone)); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Fatalf("stale response overwrote the board: %v", got)
	}
	if len(current.Column(domain.StatusTodo)) != 0 {
		t.Fatalf("stale items must not be published")
	}

	superseded := false
	for _, entry := range hook.AllEntries() {
		if entry.Message == "board.load.superseded" {
			superseded = true
		}
	}
	if !superseded {
		t.Fatalf("expected a superseded log entry")
	}
}

func TestLoaderPropagatesSessionExpiry(t *testing.T) {
	e := echo.New()
	e.GET("/api/projects/:workspaceId/:projectId/work-items", func(c echo.Context) error {
		return c.NoContent(http.StatusUnauthorized)
	})
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	logger, _ := test.NewNullLogger()
	store := storage.NewMemoryStore()
	if err := store.Set(context.Background(), "tok", time.Hour); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	opts := api.Options{BaseURL: server.URL + "/api", Logger: logger}
	client := api.NewClient(api.NewSession(store, opts), opts)
	loader, _ := newTestLoader(client)

	_, err := loader.Load(context.Background(), projectA, "")
	if !errors.Is(err, api.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, ok := loader.Current(); ok {
		t.Fatalf("expired session must not publish an empty board")
	}
	if _, ok, _ := store.Get(context.Background()); ok {
		t.Fatalf("expected token to be cleared")
	}
}
