package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	notificationout "studyhub/internal/modules/notification/adapter/out"
	"studyhub/internal/modules/notification/domain"
	notificationdto "studyhub/internal/modules/notification/dto"
	"studyhub/internal/modules/notification/service"
	"studyhub/internal/modules/notification/usecase"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/kv"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type countingStore struct {
	kv.Store
	sets atomic.Int64
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets.Add(1)
	return c.Store.Set(ctx, key, value)
}

type fakeSettings struct {
	settings domain.Settings
	getErr   error
	putErr   error
	puts     int
}

func (f *fakeSettings) GetSettings(context.Context) (domain.Settings, error) {
	return f.settings, f.getErr
}

func (f *fakeSettings) UpdateSettings(_ context.Context, s domain.Settings) (domain.Settings, error) {
	f.puts++
	if f.putErr != nil {
		return domain.Settings{}, f.putErr
	}
	f.settings = s
	return s, nil
}

type fakeExporter struct {
	path string
	list []domain.Notification
}

func (f *fakeExporter) Export(path string, list []domain.Notification) error {
	f.path, f.list = path, list
	return nil
}

type fixture struct {
	uc       *usecase.Interactor
	store    *countingStore
	bus      *events.Bus
	settings *fakeSettings
	exporter *fakeExporter
	signals  *atomic.Int64
}

func newFixture(t *testing.T, backing kv.Store) fixture {
	t.Helper()
	store := &countingStore{Store: backing}
	bus := events.NewBus()
	signals := &atomic.Int64{}
	bus.Subscribe(events.NotificationsChanged, func() { signals.Add(1) })
	clk := fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := service.NewNotificationService(clk, id.Timestamped{Clock: clk})
	settings := &fakeSettings{}
	exporter := &fakeExporter{}
	uc := usecase.NewInteractor(svc, notificationout.NewKVStore(store, nil), settings, exporter, bus, nil)
	return fixture{uc: uc, store: store, bus: bus, settings: settings, exporter: exporter, signals: signals}
}

func TestEveryMutationSignalsSubscribers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()

	first, err := f.uc.Add(ctx, "Reading complete", "reading")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.uc.Add(ctx, "Listening complete", "listening"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.uc.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := f.uc.MarkAllRead(ctx); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if err := f.uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := f.signals.Load(); got != 5 {
		t.Fatalf("expected 5 signals, got %d", got)
	}
	if len(f.uc.GetAll(ctx)) != 0 || f.uc.HasUnread(ctx) {
		t.Fatalf("expected empty list after clear")
	}
}

func TestMarkReadUnknownIDIsSilent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	if _, err := f.uc.Add(ctx, "hello", "system"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sets, signals := f.store.sets.Load(), f.signals.Load()
	if err := f.uc.MarkRead(ctx, "missing"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if f.store.sets.Load() != sets || f.signals.Load() != signals {
		t.Fatalf("unknown id must neither persist nor signal")
	}
	if f.uc.UnreadCount(ctx) != 1 {
		t.Fatalf("expected one unread")
	}
}

func TestAddOrdersNewestFirstAndMarksUnread(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := f.uc.Add(ctx, fmt.Sprintf("msg %d", i), "test"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	list := f.uc.GetAll(ctx)
	if len(list) != 3 || list[0].Message != "msg 2" || list[2].Message != "msg 0" {
		t.Fatalf("unexpected order %+v", list)
	}
	if f.uc.UnreadCount(ctx) != 3 {
		t.Fatalf("new entries must be unread")
	}
	if _, err := f.uc.Add(ctx, "x", "bogus"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestListIsCappedAt200(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	for i := 0; i < domain.MaxNotifications+1; i++ {
		if _, err := f.uc.Add(ctx, fmt.Sprintf("msg %d", i), "system"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	list := f.uc.GetAll(ctx)
	if len(list) != domain.MaxNotifications {
		t.Fatalf("expected %d, got %d", domain.MaxNotifications, len(list))
	}
	if list[len(list)-1].Message != "msg 1" {
		t.Fatalf("oldest entry should have been dropped, last is %q", list[len(list)-1].Message)
	}
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = f.uc.Add(ctx, fmt.Sprintf("msg %d", n), "system")
		}(i)
	}
	wg.Wait()
	if got := len(f.uc.GetAll(ctx)); got != 40 {
		t.Fatalf("expected 40 entries, got %d", got)
	}
}

func TestSubscriberMayReadDuringSignal(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	var seen int
	f.bus.Subscribe(events.NotificationsChanged, func() { seen = f.uc.UnreadCount(ctx) })
	if _, err := f.uc.Add(ctx, "hello", "system"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if seen != 1 {
		t.Fatalf("subscriber should observe the persisted entry, saw %d", seen)
	}
}

func TestCheckForNewContent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()

	out, err := f.uc.CheckForNewContent(ctx, notificationdto.ContentCheckInput{Key: "books", Count: 4, Label: "books"})
	if err != nil || !out.Notified || out.Delta != 4 {
		t.Fatalf("first check: %+v %v", out, err)
	}
	out, err = f.uc.CheckForNewContent(ctx, notificationdto.ContentCheckInput{Key: "books", Count: 2, Label: "books"})
	if err != nil || out.Notified {
		t.Fatalf("smaller count must not notify: %+v %v", out, err)
	}
	out, err = f.uc.CheckForNewContent(ctx, notificationdto.ContentCheckInput{Key: "books", Count: 5, Label: "books"})
	if err != nil || !out.Notified || out.Delta != 3 {
		t.Fatalf("stored count must follow the last value: %+v %v", out, err)
	}
	list := f.uc.GetAll(ctx)
	if len(list) != 2 || list[0].Message != "New books added (3)" || list[0].Type != "system" {
		t.Fatalf("unexpected notifications %+v", list)
	}
}

func TestSettingsFallbackAndPropagation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	f.settings.settings = domain.Settings{PushNotificationsEnabled: true, EmailUpdatesEnabled: true}
	f.settings.getErr = &apperrors.APIError{Kind: apperrors.KindServer, Status: 500}
	if got := f.uc.GetSettings(ctx); got.PushNotificationsEnabled || got.EmailUpdatesEnabled {
		t.Fatalf("failed load must fall back to both disabled, got %+v", got)
	}
	f.settings.putErr = &apperrors.APIError{Kind: apperrors.KindNetwork}
	err := f.uc.UpdateSettings(ctx, notificationdto.UpdateSettingsInput{PushNotificationsEnabled: true})
	if !errors.Is(err, apperrors.ErrNetworkUnavailable) {
		t.Fatalf("update errors must propagate, got %v", err)
	}
}

func TestExportUsesStoredList(t *testing.T) {
	t.Parallel()
	f := newFixture(t, kv.NewMemoryStore())
	ctx := context.Background()
	_, _ = f.uc.Add(ctx, "one", "system")
	out, err := f.uc.Export(ctx, "/tmp/n.xlsx")
	if err != nil || out.Count != 1 || f.exporter.path != "/tmp/n.xlsx" || len(f.exporter.list) != 1 {
		t.Fatalf("unexpected export %+v %v", out, err)
	}
}

func TestNotificationsSurviveReopen(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "studyhub.db")
	ctx := context.Background()

	store, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	f := newFixture(t, store)
	if _, err := f.uc.Add(ctx, "persisted", "speaking"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := kv.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	g := newFixture(t, reopened)
	list := g.uc.GetAll(ctx)
	if len(list) != 1 || list[0].Message != "persisted" || list[0].Type != "speaking" {
		t.Fatalf("unexpected list after reopen %+v", list)
	}
}
