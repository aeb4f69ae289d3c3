package in

import (
	"time"

	"studyhub/internal/modules/timer/dto"
)

type Usecase interface {
	Start() (dto.CountdownOutput, error)
	Stop() dto.CountdownOutput
	Reset() dto.CountdownOutput
	SetDuration(total time.Duration) (dto.CountdownOutput, error)
	Snapshot() dto.CountdownOutput
	Close()
}
