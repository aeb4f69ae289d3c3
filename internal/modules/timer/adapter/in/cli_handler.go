package in

import (
	"time"

	timerdto "studyhub/internal/modules/timer/dto"
	timerin "studyhub/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start() (timerdto.CountdownOutput, error) {
	return h.usecase.Start()
}

func (h CLIHandler) Stop() timerdto.CountdownOutput {
	return h.usecase.Stop()
}

func (h CLIHandler) Reset() timerdto.CountdownOutput {
	return h.usecase.Reset()
}

func (h CLIHandler) SetMinutes(minutes int) (timerdto.CountdownOutput, error) {
	return h.usecase.SetDuration(time.Duration(minutes) * time.Minute)
}

func (h CLIHandler) Status() timerdto.CountdownOutput {
	return h.usecase.Snapshot()
}
