package domain

import (
	"fmt"
	"time"
)

// Persisted storage keys.
const (
	NotificationsKey = "app_notifications_v1"
	ContentCountsKey = "content_counts_v1"
)

// MaxNotifications bounds the stored list; the oldest entries fall off.
const MaxNotifications = 200

type Type string

const (
	TypeReading   Type = "reading"
	TypeListening Type = "listening"
	TypeWriting   Type = "writing"
	TypeSpeaking  Type = "speaking"
	TypeTest      Type = "test"
	TypeSystem    Type = "system"
)

func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case TypeReading, TypeListening, TypeWriting, TypeSpeaking, TypeTest, TypeSystem:
		return t, nil
	}
	return "", fmt.Errorf("unknown notification type %q", raw)
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// Settings are the server-side delivery preferences.
type Settings struct {
	PushNotificationsEnabled bool `json:"pushNotificationsEnabled"`
	EmailUpdatesEnabled      bool `json:"emailUpdatesEnabled"`
}
