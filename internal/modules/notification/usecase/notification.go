package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/notification/domain"
	notificationdto "studyhub/internal/modules/notification/dto"
	notificationin "studyhub/internal/modules/notification/port/in"
	notificationout "studyhub/internal/modules/notification/port/out"
	"studyhub/internal/modules/notification/service"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/events"
)

// Interactor is the notification bus. Reads always go to storage; writers
// are serialized so concurrent mutations never lose an entry.
type Interactor struct {
	svc       *service.NotificationService
	store     notificationout.Store
	settings  notificationout.SettingsGateway
	exporter  notificationout.Exporter
	publisher events.Publisher
	logger    hclog.Logger

	mu sync.Mutex
}

var _ notificationin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.NotificationService, store notificationout.Store, settings notificationout.SettingsGateway, exporter notificationout.Exporter, publisher events.Publisher, logger hclog.Logger) *Interactor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{
		svc:       svc,
		store:     store,
		settings:  settings,
		exporter:  exporter,
		publisher: publisher,
		logger:    logger.Named("notification"),
	}
}

func (i *Interactor) Add(ctx context.Context, message, notificationType string) (notificationdto.NotificationOutput, error) {
	n, err := i.svc.New(message, notificationType)
	if err != nil {
		return notificationdto.NotificationOutput{}, err
	}
	if err := i.mutate(ctx, func(list []domain.Notification) ([]domain.Notification, bool) {
		return service.Prepend(list, n), true
	}); err != nil {
		return notificationdto.NotificationOutput{}, err
	}
	return toOutput(n), nil
}

// Notify is Add for callers that only care whether the entry was stored.
func (i *Interactor) Notify(ctx context.Context, message, notificationType string) error {
	_, err := i.Add(ctx, message, notificationType)
	return err
}

func (i *Interactor) MarkRead(ctx context.Context, id string) error {
	return i.mutate(ctx, func(list []domain.Notification) ([]domain.Notification, bool) {
		for idx := range list {
			if list[idx].ID == id {
				list[idx].Read = true
				return list, true
			}
		}
		return list, false
	})
}

func (i *Interactor) MarkAllRead(ctx context.Context) error {
	return i.mutate(ctx, func(list []domain.Notification) ([]domain.Notification, bool) {
		for idx := range list {
			list[idx].Read = true
		}
		return list, true
	})
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.mutate(ctx, func([]domain.Notification) ([]domain.Notification, bool) {
		return []domain.Notification{}, true
	})
}

func (i *Interactor) GetAll(ctx context.Context) []notificationdto.NotificationOutput {
	list := i.load(ctx)
	out := make([]notificationdto.NotificationOutput, 0, len(list))
	for _, n := range list {
		out = append(out, toOutput(n))
	}
	return out
}

func (i *Interactor) HasUnread(ctx context.Context) bool {
	return i.UnreadCount(ctx) > 0
}

func (i *Interactor) UnreadCount(ctx context.Context) int {
	return service.UnreadCount(i.load(ctx))
}

func (i *Interactor) CheckForNewContent(ctx context.Context, input notificationdto.ContentCheckInput) (notificationdto.ContentCheckOutput, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return notificationdto.ContentCheckOutput{}, fmt.Errorf("%w: content key is required", apperrors.ErrInvalidInput)
	}
	if input.Count < 0 {
		return notificationdto.ContentCheckOutput{}, fmt.Errorf("%w: count must be non-negative", apperrors.ErrInvalidInput)
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		label = key
	}

	i.mu.Lock()
	counts, err := i.store.LoadCounts(ctx)
	if err != nil {
		i.mu.Unlock()
		return notificationdto.ContentCheckOutput{}, err
	}
	delta, notify := service.ContentDelta(counts, key, input.Count)
	counts[key] = input.Count
	err = i.store.SaveCounts(ctx, counts)
	i.mu.Unlock()
	if err != nil {
		return notificationdto.ContentCheckOutput{}, err
	}

	if !notify {
		return notificationdto.ContentCheckOutput{}, nil
	}
	if _, err := i.Add(ctx, service.ContentMessage(label, delta), string(domain.TypeSystem)); err != nil {
		return notificationdto.ContentCheckOutput{}, err
	}
	return notificationdto.ContentCheckOutput{Notified: true, Delta: delta}, nil
}

func (i *Interactor) GetSettings(ctx context.Context) notificationdto.SettingsOutput {
	settings, err := i.settings.GetSettings(ctx)
	if err != nil {
		i.logger.Warn("load notification settings", "error", err)
		return notificationdto.SettingsOutput{}
	}
	return notificationdto.SettingsOutput{
		PushNotificationsEnabled: settings.PushNotificationsEnabled,
		EmailUpdatesEnabled:      settings.EmailUpdatesEnabled,
	}
}

func (i *Interactor) UpdateSettings(ctx context.Context, input notificationdto.UpdateSettingsInput) error {
	_, err := i.settings.UpdateSettings(ctx, domain.Settings{
		PushNotificationsEnabled: input.PushNotificationsEnabled,
		EmailUpdatesEnabled:      input.EmailUpdatesEnabled,
	})
	if err != nil {
		return fmt.Errorf("update notification settings: %w", err)
	}
	return nil
}

func (i *Interactor) Export(ctx context.Context, path string) (notificationdto.ExportOutput, error) {
	if strings.TrimSpace(path) == "" {
		return notificationdto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	list := i.load(ctx)
	if err := i.exporter.Export(path, list); err != nil {
		return notificationdto.ExportOutput{}, fmt.Errorf("export notifications: %w", err)
	}
	return notificationdto.ExportOutput{Path: path, Count: len(list)}, nil
}

// mutate applies fn under the writer lock, persists when fn reports a change
// and then signals subscribers outside the lock.
func (i *Interactor) mutate(ctx context.Context, fn func([]domain.Notification) ([]domain.Notification, bool)) error {
	i.mu.Lock()
	list, err := i.store.LoadNotifications(ctx)
	if err != nil {
		i.mu.Unlock()
		return err
	}
	next, changed := fn(list)
	if changed {
		err = i.store.SaveNotifications(ctx, next)
	}
	i.mu.Unlock()
	if err != nil {
		return err
	}
	if changed && i.publisher != nil {
		i.publisher.Publish(events.NotificationsChanged)
	}
	return nil
}

func (i *Interactor) load(ctx context.Context) []domain.Notification {
	list, err := i.store.LoadNotifications(ctx)
	if err != nil {
		i.logger.Warn("load notifications", "error", err)
		return nil
	}
	return list
}

func toOutput(n domain.Notification) notificationdto.NotificationOutput {
	return notificationdto.NotificationOutput{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		CreatedAt: n.CreatedAt,
		Read:      n.Read,
	}
}
