package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"studyhub/internal/modules/speaking/domain"
	"studyhub/internal/platform/id"
)

var extensions = map[string]string{
	"audio/wav":  ".wav",
	"audio/webm": ".webm",
	"audio/ogg":  ".ogg",
	"audio/mpeg": ".mp3",
}

// FileAssetStore keeps each recording as <dir>/<uuid><ext>.
type FileAssetStore struct {
	dir string
	ids id.Generator
}

func NewFileAssetStore(dir string) *FileAssetStore {
	return &FileAssetStore{dir: dir, ids: id.UUID{}}
}

func (s *FileAssetStore) Save(_ context.Context, mimeType string, data []byte) (domain.Asset, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.Asset{}, fmt.Errorf("create recordings dir: %w", err)
	}
	ext, ok := extensions[mimeType]
	if !ok {
		ext = ".bin"
	}
	ref := s.ids.New()
	path := filepath.Join(s.dir, ref+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.Asset{}, fmt.Errorf("write recording: %w", err)
	}
	return domain.Asset{Ref: ref, Path: path, MIMEType: mimeType, Size: int64(len(data))}, nil
}

func (s *FileAssetStore) Release(asset domain.Asset) error {
	if asset.Path == "" {
		return nil
	}
	if err := os.Remove(asset.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove recording: %w", err)
	}
	return nil
}
