package out

import "context"

type Notifier interface {
	Notify(ctx context.Context, message, notificationType string) error
}
