package in

import (
	"context"

	notificationdto "studyhub/internal/modules/notification/dto"
	notificationin "studyhub/internal/modules/notification/port/in"
)

type CLIHandler struct {
	usecase notificationin.Usecase
}

func NewCLIHandler(usecase notificationin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) []notificationdto.NotificationOutput {
	return h.usecase.GetAll(ctx)
}

func (h CLIHandler) Unread(ctx context.Context) int {
	return h.usecase.UnreadCount(ctx)
}

func (h CLIHandler) Add(ctx context.Context, message, notificationType string) (notificationdto.NotificationOutput, error) {
	return h.usecase.Add(ctx, message, notificationType)
}

func (h CLIHandler) MarkRead(ctx context.Context, id string) error {
	return h.usecase.MarkRead(ctx, id)
}

func (h CLIHandler) MarkAllRead(ctx context.Context) error {
	return h.usecase.MarkAllRead(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Settings(ctx context.Context) notificationdto.SettingsOutput {
	return h.usecase.GetSettings(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, push, email bool) error {
	return h.usecase.UpdateSettings(ctx, notificationdto.UpdateSettingsInput{PushNotificationsEnabled: push, EmailUpdatesEnabled: email})
}

func (h CLIHandler) Export(ctx context.Context, path string) (notificationdto.ExportOutput, error) {
	return h.usecase.Export(ctx, path)
}
