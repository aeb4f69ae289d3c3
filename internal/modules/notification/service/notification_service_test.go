package service_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"studyhub/internal/modules/notification/domain"
	"studyhub/internal/modules/notification/service"
	apperrors "studyhub/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func TestNewValidatesMessageAndType(t *testing.T) {
	t.Parallel()
	svc := service.NewNotificationService(fixedClock{now: time.Unix(100, 0)}, &seqID{})
	if _, err := svc.New("  ", "system"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank message, got %v", err)
	}
	if _, err := svc.New("hi", "email"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}
	n, err := svc.New(" hi ", "listening")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if n.ID != "id-1" || n.Message != "hi" || n.Type != domain.TypeListening || n.Read || !n.CreatedAt.Equal(time.Unix(100, 0)) {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestPrependCapsList(t *testing.T) {
	t.Parallel()
	var list []domain.Notification
	for i := 0; i < domain.MaxNotifications+5; i++ {
		list = service.Prepend(list, domain.Notification{ID: fmt.Sprint(i)})
	}
	if len(list) != domain.MaxNotifications {
		t.Fatalf("expected %d entries, got %d", domain.MaxNotifications, len(list))
	}
	if list[0].ID != fmt.Sprint(domain.MaxNotifications+4) {
		t.Fatalf("newest must be first, got %s", list[0].ID)
	}
	if list[len(list)-1].ID != "5" {
		t.Fatalf("oldest entries must be dropped, last is %s", list[len(list)-1].ID)
	}
}

func TestContentDelta(t *testing.T) {
	t.Parallel()
	counts := map[string]int{"books": 5}
	if delta, ok := service.ContentDelta(counts, "books", 8); !ok || delta != 3 {
		t.Fatalf("expected delta 3, got %d %v", delta, ok)
	}
	if _, ok := service.ContentDelta(counts, "books", 5); ok {
		t.Fatalf("equal count must not notify")
	}
	if _, ok := service.ContentDelta(counts, "books", 2); ok {
		t.Fatalf("smaller count must not notify")
	}
	if delta, ok := service.ContentDelta(counts, "writings", 2); !ok || delta != 2 {
		t.Fatalf("unseen key starts from zero, got %d %v", delta, ok)
	}
	if got := service.ContentMessage("books", 3); got != "New books added (3)" {
		t.Fatalf("unexpected message %q", got)
	}
}
