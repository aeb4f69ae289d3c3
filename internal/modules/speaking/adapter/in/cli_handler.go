package in

import (
	"context"

	speakingdto "studyhub/internal/modules/speaking/dto"
	speakingin "studyhub/internal/modules/speaking/port/in"
)

type CLIHandler struct {
	usecase speakingin.Usecase
}

func NewCLIHandler(usecase speakingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context) (speakingdto.RecordingOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (speakingdto.RecordingOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Discard() (speakingdto.RecordingOutput, error) {
	return h.usecase.Discard()
}

func (h CLIHandler) Status() speakingdto.RecordingOutput {
	return h.usecase.Snapshot()
}
