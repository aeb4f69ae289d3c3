package service

import (
	"fmt"
	"strings"

	"studyhub/internal/modules/notification/domain"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/id"
)

type NotificationService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewNotificationService(clock clock.Clock, idGen id.Generator) *NotificationService {
	return &NotificationService{clock: clock, idGen: idGen}
}

func (s *NotificationService) New(message, rawType string) (domain.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Notification{}, fmt.Errorf("%w: message is required", apperrors.ErrInvalidInput)
	}
	t, err := domain.ParseType(rawType)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return domain.Notification{
		ID:        s.idGen.New(),
		Message:   message,
		Type:      t,
		CreatedAt: s.clock.Now(),
	}, nil
}

// Prepend puts n first and drops whatever exceeds MaxNotifications.
func Prepend(list []domain.Notification, n domain.Notification) []domain.Notification {
	next := make([]domain.Notification, 0, len(list)+1)
	next = append(next, n)
	next = append(next, list...)
	if len(next) > domain.MaxNotifications {
		next = next[:domain.MaxNotifications]
	}
	return next
}

func UnreadCount(list []domain.Notification) int {
	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count
}

// ContentDelta reports how many items appeared since the stored count.
// Only a strictly larger count produces a notification.
func ContentDelta(counts map[string]int, key string, count int) (int, bool) {
	prev := counts[key]
	if count > prev {
		return count - prev, true
	}
	return 0, false
}

func ContentMessage(label string, delta int) string {
	return fmt.Sprintf("New %s added (%d)", label, delta)
}
