package in

import (
	"context"

	"studyhub/internal/modules/notification/dto"
)

type Usecase interface {
	Add(ctx context.Context, message, notificationType string) (dto.NotificationOutput, error)
	Notify(ctx context.Context, message, notificationType string) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Clear(ctx context.Context) error
	GetAll(ctx context.Context) []dto.NotificationOutput
	HasUnread(ctx context.Context) bool
	UnreadCount(ctx context.Context) int
	CheckForNewContent(ctx context.Context, input dto.ContentCheckInput) (dto.ContentCheckOutput, error)
	GetSettings(ctx context.Context) dto.SettingsOutput
	UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) error
	Export(ctx context.Context, path string) (dto.ExportOutput, error)
}
