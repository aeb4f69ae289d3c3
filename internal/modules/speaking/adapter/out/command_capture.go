package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	speakingout "studyhub/internal/modules/speaking/port/out"
	apperrors "studyhub/internal/platform/errors"
)

const (
	chunkSize   = 4096
	stopTimeout = 2 * time.Second
)

// CommandCaptureDevice records by running an external capture program
// (arecord by default) and streaming its stdout. The command line goes
// through sh so quoting works; exec keeps the signal path to the recorder.
type CommandCaptureDevice struct {
	command  string
	mimeType string
	logger   hclog.Logger
}

func NewCommandCaptureDevice(command, mimeType string, logger hclog.Logger) *CommandCaptureDevice {
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CommandCaptureDevice{command: strings.TrimSpace(command), mimeType: mimeType, logger: logger.Named("capture")}
}

func (d *CommandCaptureDevice) Open(ctx context.Context, onChunk func([]byte)) (speakingout.Stream, error) {
	fields := strings.Fields(d.command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no capture command configured", apperrors.ErrMediaDeviceUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMediaDeviceUnavailable, err)
	}
	cmd := exec.Command("sh", "-c", "exec "+d.command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMediaDeviceUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMediaDeviceUnavailable, err)
	}
	d.logger.Debug("capture started", "command", fields[0], "pid", cmd.Process.Pid)

	s := &commandStream{cmd: cmd, mimeType: d.mimeType, done: make(chan struct{})}
	go s.pump(stdout, onChunk)
	return s, nil
}

type commandStream struct {
	cmd      *exec.Cmd
	mimeType string
	done     chan struct{}

	once sync.Once
	err  error
}

func (s *commandStream) pump(r io.Reader, onChunk func([]byte)) {
	defer close(s.done)
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			onChunk(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *commandStream) MIMEType() string { return s.mimeType }

func (s *commandStream) Stop() error {
	s.once.Do(func() { s.err = s.stop() })
	return s.err
}

func (s *commandStream) stop() error {
	_ = s.cmd.Process.Signal(os.Interrupt)
	select {
	case <-s.done:
	case <-time.After(stopTimeout):
		_ = s.cmd.Process.Kill()
		select {
		case <-s.done:
		case <-time.After(stopTimeout):
		}
	}
	err := s.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("wait for capture command: %w", err)
	}
	return nil
}
