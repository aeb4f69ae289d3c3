package out

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"studyhub/internal/modules/listening/domain"
	apperrors "studyhub/internal/platform/errors"
)

//go:embed exercises/*.yaml
var builtin embed.FS

// ManifestRepository reads exercise manifests (*.yaml) from a directory.
// Built-in exercises are used when the directory is unset or missing;
// manifests on disk override built-ins with the same id.
type ManifestRepository struct {
	dir string
}

func NewManifestRepository(dir string) *ManifestRepository {
	return &ManifestRepository{dir: dir}
}

func (r *ManifestRepository) List(_ context.Context) ([]domain.Exercise, error) {
	byID := map[string]domain.Exercise{}
	if err := loadFS(builtin, "exercises", byID); err != nil {
		return nil, err
	}
	if r.dir != "" {
		err := loadFS(os.DirFS(r.dir), ".", byID)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	out := make([]domain.Exercise, 0, len(byID))
	for _, e := range byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ManifestRepository) Get(ctx context.Context, id string) (domain.Exercise, error) {
	all, err := r.List(ctx)
	if err != nil {
		return domain.Exercise{}, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Exercise{}, fmt.Errorf("%w: exercise %s", apperrors.ErrNotFound, id)
}

func loadFS(fsys fs.FS, dir string, into map[string]domain.Exercise) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		raw, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, name)))
		if err != nil {
			return fmt.Errorf("read manifest %s: %w", name, err)
		}
		var exercise domain.Exercise
		if err := yaml.Unmarshal(raw, &exercise); err != nil {
			return fmt.Errorf("parse manifest %s: %w", name, err)
		}
		if err := exercise.Validate(); err != nil {
			return fmt.Errorf("manifest %s: %w", name, err)
		}
		into[exercise.ID] = exercise
	}
	return nil
}
