package out_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"sync"
	"testing"
	"time"

	speakingout "studyhub/internal/modules/speaking/adapter/out"
	"studyhub/internal/modules/speaking/domain"
	apperrors "studyhub/internal/platform/errors"
)

func TestCommandCaptureStreamsStdout(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var (
		mu  sync.Mutex
		got []byte
	)
	first := make(chan struct{})
	var once sync.Once
	device := speakingout.NewCommandCaptureDevice("sh -c 'printf hello; exec sleep 30'", "", nil)
	stream, err := device.Open(context.Background(), func(chunk []byte) {
		mu.Lock()
		got = append(got, chunk...)
		mu.Unlock()
		once.Do(func() { close(first) })
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatalf("no chunk received")
	}
	if err := stream.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if string(got) != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if stream.MIMEType() != "audio/wav" {
		t.Fatalf("unexpected mime %q", stream.MIMEType())
	}
}

func TestCommandCaptureMissingBinary(t *testing.T) {
	t.Parallel()
	device := speakingout.NewCommandCaptureDevice("studyhub-no-such-recorder --raw", "", nil)
	if _, err := device.Open(context.Background(), func([]byte) {}); !errors.Is(err, apperrors.ErrMediaDeviceUnavailable) {
		t.Fatalf("expected media device error, got %v", err)
	}
	empty := speakingout.NewCommandCaptureDevice("  ", "", nil)
	if _, err := empty.Open(context.Background(), func([]byte) {}); !errors.Is(err, apperrors.ErrMediaDeviceUnavailable) {
		t.Fatalf("expected media device error for empty command, got %v", err)
	}
}

func TestFileAssetStoreSaveAndRelease(t *testing.T) {
	t.Parallel()
	store := speakingout.NewFileAssetStore(t.TempDir())
	asset, err := store.Save(context.Background(), "audio/webm", []byte("abc"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if asset.Size != 3 || asset.Ref == "" {
		t.Fatalf("unexpected asset %+v", asset)
	}
	if _, err := os.Stat(asset.Path); err != nil {
		t.Fatalf("asset file missing: %v", err)
	}
	if err := store.Release(asset); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := store.Release(asset); err != nil {
		t.Fatalf("second release must be a no-op: %v", err)
	}
	if err := store.Release(domain.Asset{}); err != nil {
		t.Fatalf("empty asset release: %v", err)
	}
}
