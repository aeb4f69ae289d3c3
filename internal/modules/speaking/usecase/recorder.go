package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/speaking/domain"
	speakingdto "studyhub/internal/modules/speaking/dto"
	speakingin "studyhub/internal/modules/speaking/port/in"
	speakingout "studyhub/internal/modules/speaking/port/out"
	apperrors "studyhub/internal/platform/errors"
)

const completionCategory = "SPEAKING"

type Recorder struct {
	device   speakingout.CaptureDevice
	assets   speakingout.AssetStore
	reporter speakingout.CompletionReporter
	logger   hclog.Logger

	mu     sync.Mutex
	rec    domain.Recording
	stream speakingout.Stream

	// chunks arrive on the device goroutine; gen drops late chunks from an
	// older stream.
	chunkMu sync.Mutex
	gen     uint64
	chunks  [][]byte
}

var _ speakingin.Usecase = (*Recorder)(nil)

func NewRecorder(device speakingout.CaptureDevice, assets speakingout.AssetStore, reporter speakingout.CompletionReporter, logger hclog.Logger) *Recorder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Recorder{
		device:   device,
		assets:   assets,
		reporter: reporter,
		logger:   logger.Named("speaking"),
		rec:      domain.Recording{State: domain.StateIdle},
	}
}

func (r *Recorder) Start(ctx context.Context) (speakingdto.RecordingOutput, error) {
	r.mu.Lock()
	switch r.rec.State {
	case domain.StateRequesting, domain.StateRecording:
		r.mu.Unlock()
		return speakingdto.RecordingOutput{}, fmt.Errorf("%w: recorder is %s", apperrors.ErrInvalidTransition, r.rec.State)
	}
	r.rec.State = domain.StateRequesting
	r.rec.Error = ""
	gen := r.resetChunks()
	r.mu.Unlock()

	stream, err := r.device.Open(ctx, func(chunk []byte) { r.onChunk(gen, chunk) })

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.rec.State = domain.StateIdle
		r.rec.Error = "Microphone access denied: " + err.Error()
		r.logger.Warn("capture device unavailable", "error", err)
		return r.snapshotLocked(), fmt.Errorf("%w: %v", apperrors.ErrMediaDeviceUnavailable, err)
	}
	r.stream = stream
	r.rec.State = domain.StateRecording
	return r.snapshotLocked(), nil
}

// Stop finalizes the captured chunks into one asset, releasing the previous
// asset first. The first recording after a discard reports completion.
func (r *Recorder) Stop(ctx context.Context) (speakingdto.RecordingOutput, error) {
	r.mu.Lock()
	if r.rec.State != domain.StateRecording {
		state := r.rec.State
		r.mu.Unlock()
		return speakingdto.RecordingOutput{}, fmt.Errorf("%w: recorder is %s", apperrors.ErrInvalidTransition, state)
	}
	stream := r.stream
	r.stream = nil
	if err := stream.Stop(); err != nil {
		r.logger.Warn("capture device did not stop cleanly", "error", err)
	}
	data := r.takeChunks()

	r.releaseLocked()
	asset, err := r.assets.Save(ctx, stream.MIMEType(), data)
	if err != nil {
		r.rec.State = domain.StateIdle
		r.rec.Error = "Could not save recording"
		out := r.snapshotLocked()
		r.mu.Unlock()
		return out, fmt.Errorf("save recording: %w", err)
	}
	r.rec.Asset = &asset
	r.rec.State = domain.StateStopped
	report := !r.rec.Reported
	r.rec.Reported = true
	out := r.snapshotLocked()
	r.mu.Unlock()

	r.logger.Info("recording saved", "ref", asset.Ref, "bytes", asset.Size)
	if report && r.reporter != nil {
		if err := r.reporter.ReportCompletion(ctx, completionCategory); err != nil {
			r.logger.Warn("report completion", "error", err)
		}
	}
	return out, nil
}

// Discard releases the current asset and re-arms the completion report.
func (r *Recorder) Discard() (speakingdto.RecordingOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.rec.State {
	case domain.StateRequesting, domain.StateRecording:
		return speakingdto.RecordingOutput{}, fmt.Errorf("%w: recorder is %s", apperrors.ErrInvalidTransition, r.rec.State)
	}
	r.releaseLocked()
	r.rec.Reported = false
	r.rec.State = domain.StateIdle
	r.rec.Error = ""
	return r.snapshotLocked(), nil
}

func (r *Recorder) Snapshot() speakingdto.RecordingOutput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Close stops any capture in progress and releases the asset.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.stream != nil {
		err = r.stream.Stop()
		r.stream = nil
		r.takeChunks()
	}
	r.releaseLocked()
	r.rec.State = domain.StateIdle
	return err
}

func (r *Recorder) releaseLocked() {
	if r.rec.Asset == nil {
		return
	}
	if err := r.assets.Release(*r.rec.Asset); err != nil {
		r.logger.Warn("release recording", "ref", r.rec.Asset.Ref, "error", err)
	}
	r.rec.Asset = nil
}

func (r *Recorder) snapshotLocked() speakingdto.RecordingOutput {
	out := speakingdto.RecordingOutput{
		State:    string(r.rec.State),
		Reported: r.rec.Reported,
		Error:    r.rec.Error,
	}
	if a := r.rec.Asset; a != nil {
		out.AssetRef, out.AssetPath, out.MIMEType, out.Size = a.Ref, a.Path, a.MIMEType, a.Size
	}
	return out
}

func (r *Recorder) resetChunks() uint64 {
	r.chunkMu.Lock()
	defer r.chunkMu.Unlock()
	r.gen++
	r.chunks = nil
	return r.gen
}

func (r *Recorder) onChunk(gen uint64, chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	r.chunkMu.Lock()
	defer r.chunkMu.Unlock()
	if gen != r.gen {
		return
	}
	r.chunks = append(r.chunks, append([]byte(nil), chunk...))
}

func (r *Recorder) takeChunks() []byte {
	r.chunkMu.Lock()
	defer r.chunkMu.Unlock()
	data := bytes.Join(r.chunks, nil)
	r.chunks = nil
	r.gen++
	return data
}
