package in

import (
	"context"

	"studyhub/internal/modules/speaking/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.RecordingOutput, error)
	Stop(ctx context.Context) (dto.RecordingOutput, error)
	Discard() (dto.RecordingOutput, error)
	Snapshot() dto.RecordingOutput
	Close() error
}
