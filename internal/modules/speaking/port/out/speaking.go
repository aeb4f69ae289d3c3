package out

import (
	"context"

	"studyhub/internal/modules/speaking/domain"
)

// Stream is an open capture session. Stop releases the device and returns
// only after every chunk has been delivered.
type Stream interface {
	Stop() error
	MIMEType() string
}

// CaptureDevice acquires the microphone. Chunks are delivered to onChunk
// from the device's own goroutine until the stream is stopped.
type CaptureDevice interface {
	Open(ctx context.Context, onChunk func([]byte)) (Stream, error)
}

type AssetStore interface {
	Save(ctx context.Context, mimeType string, data []byte) (domain.Asset, error)
	Release(asset domain.Asset) error
}

type CompletionReporter interface {
	ReportCompletion(ctx context.Context, category string) error
}
