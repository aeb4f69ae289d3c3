package dto

import "time"

type NotificationOutput struct {
	ID        string
	Message   string
	Type      string
	CreatedAt time.Time
	Read      bool
}

type ContentCheckInput struct {
	Key   string
	Count int
	Label string
}

type ContentCheckOutput struct {
	Notified bool
	Delta    int
}

type SettingsOutput struct {
	PushNotificationsEnabled bool
	EmailUpdatesEnabled      bool
}

type UpdateSettingsInput struct {
	PushNotificationsEnabled bool
	EmailUpdatesEnabled      bool
}

type ExportOutput struct {
	Path  string
	Count int
}
