package out

import (
	"context"

	notificationdto "studyhub/internal/modules/notification/dto"
)

// FeedCounter reports how many items a backend collection currently holds.
type FeedCounter interface {
	Count(ctx context.Context, path string) (int, error)
}

type ContentTracker interface {
	CheckForNewContent(ctx context.Context, input notificationdto.ContentCheckInput) (notificationdto.ContentCheckOutput, error)
}
