package in

import (
	"context"
	"time"

	"studyhub/internal/modules/catalog/dto"
)

type Usecase interface {
	CheckNow(ctx context.Context) dto.CheckOutput
	Watch(interval time.Duration) error
	StopWatching()
}
