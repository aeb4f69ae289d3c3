package in

import (
	"context"
	"time"

	catalogdto "studyhub/internal/modules/catalog/dto"
	catalogin "studyhub/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context) catalogdto.CheckOutput {
	return h.usecase.CheckNow(ctx)
}

func (h CLIHandler) Watch(interval time.Duration) error {
	return h.usecase.Watch(interval)
}

func (h CLIHandler) Stop() {
	h.usecase.StopWatching()
}
