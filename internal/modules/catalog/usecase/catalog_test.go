package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	catalogout "studyhub/internal/modules/catalog/adapter/out"
	"studyhub/internal/modules/catalog/domain"
	"studyhub/internal/modules/catalog/usecase"
	notificationdto "studyhub/internal/modules/notification/dto"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/httpapi"
	"studyhub/internal/platform/schedule"
)

type fakeTracker struct {
	mu     sync.Mutex
	counts map[string]int
	notes  []string
}

func (f *fakeTracker) CheckForNewContent(_ context.Context, in notificationdto.ContentCheckInput) (notificationdto.ContentCheckOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, seen := f.counts[in.Key]
	f.counts[in.Key] = in.Count
	if seen && in.Count > prev {
		f.notes = append(f.notes, in.Label)
		return notificationdto.ContentCheckOutput{Notified: true, Delta: in.Count - prev}, nil
	}
	return notificationdto.ContentCheckOutput{}, nil
}

type backend struct {
	mu    sync.Mutex
	books string
}

func (b *backend) setBooks(body string) {
	b.mu.Lock()
	b.books = body
	b.mu.Unlock()
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/books", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		body := b.books
		b.mu.Unlock()
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/writings", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/mock-tests", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"totalElements":5}`))
	})
	return mux
}

func newInteractor(t *testing.T, b *backend, tracker *fakeTracker, sched schedule.Scheduler) *usecase.Interactor {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	client := httpapi.New(srv.URL, 0, nil)
	feeds := []domain.Feed{
		{Key: "writings", Path: "/writings", Label: "writing tasks"},
		{Key: "books", Path: "/books", Label: "books"},
		{Key: "mock-tests", Path: "/mock-tests"},
	}
	uc, err := usecase.NewInteractor(feeds, catalogout.NewHTTPFeedCounter(client), tracker, sched, nil)
	if err != nil {
		t.Fatalf("new interactor: %v", err)
	}
	return uc
}

func TestCheckNowSkipsFailingFeeds(t *testing.T) {
	t.Parallel()
	b := &backend{books: `[{"id":1},{"id":2}]`}
	tracker := &fakeTracker{counts: map[string]int{}}
	uc := newInteractor(t, b, tracker, schedule.NewManual())

	first := uc.CheckNow(context.Background())
	if len(first.Results) != 3 || first.Failed() != 1 {
		t.Fatalf("expected one failed feed of three, got %+v", first.Results)
	}
	if first.Results[0].Err == "" {
		t.Fatal("expected writings feed to report its failure")
	}
	if first.Results[1].Count != 2 || first.Results[2].Count != 5 {
		t.Fatalf("unexpected counts: %+v", first.Results)
	}
	if first.Results[2].Label != "mock-tests" {
		t.Fatalf("expected key as fallback label, got %q", first.Results[2].Label)
	}
	if len(tracker.notes) != 0 {
		t.Fatal("first observation must not notify")
	}

	b.setBooks(`[{"id":1},{"id":2},{"id":3},{"id":4}]`)
	second := uc.CheckNow(context.Background())
	if !second.Results[1].Notified || second.Results[1].Delta != 2 {
		t.Fatalf("expected books delta 2, got %+v", second.Results[1])
	}
	if len(tracker.notes) != 1 || tracker.notes[0] != "books" {
		t.Fatalf("unexpected notices: %v", tracker.notes)
	}
}

func TestWatchReplacesPreviousJob(t *testing.T) {
	t.Parallel()
	b := &backend{books: `[]`}
	tracker := &fakeTracker{counts: map[string]int{}}
	sched := schedule.NewManual()
	uc := newInteractor(t, b, tracker, sched)

	if err := uc.Watch(1); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := uc.Watch(1); err != nil {
		t.Fatalf("watch again: %v", err)
	}
	if sched.Active() != 1 {
		t.Fatalf("expected one watch job, got %d", sched.Active())
	}
	sched.Fire()
	tracker.mu.Lock()
	_, seen := tracker.counts["books"]
	tracker.mu.Unlock()
	if !seen {
		t.Fatal("expected scheduled check to record counts")
	}
	uc.StopWatching()
	if sched.Active() != 0 {
		t.Fatal("stop must cancel the watch job")
	}
}

func TestNewInteractorRejectsBadFeeds(t *testing.T) {
	t.Parallel()
	_, err := usecase.NewInteractor([]domain.Feed{{Key: "x", Path: "books"}}, nil, nil, schedule.NewManual(), nil)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
