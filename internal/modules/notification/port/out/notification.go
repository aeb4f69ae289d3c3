package out

import (
	"context"

	"studyhub/internal/modules/notification/domain"
)

// Store persists the notification list and the content-seen counters.
// Unreadable records load as empty.
type Store interface {
	LoadNotifications(ctx context.Context) ([]domain.Notification, error)
	SaveNotifications(ctx context.Context, list []domain.Notification) error
	LoadCounts(ctx context.Context) (map[string]int, error)
	SaveCounts(ctx context.Context, counts map[string]int) error
}

type SettingsGateway interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}

type Exporter interface {
	Export(path string, list []domain.Notification) error
}
