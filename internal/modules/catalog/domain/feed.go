package domain

import (
	"fmt"
	"strings"

	apperrors "studyhub/internal/platform/errors"
)

// Feed is a backend collection whose item count is watched. Key is the
// content-counter key; Label is the plural noun used in the notice.
type Feed struct {
	Key   string
	Path  string
	Label string
}

func (f Feed) Validate() error {
	if strings.TrimSpace(f.Key) == "" {
		return fmt.Errorf("%w: feed key is required", apperrors.ErrInvalidInput)
	}
	if !strings.HasPrefix(f.Path, "/") {
		return fmt.Errorf("%w: feed %q path must start with /", apperrors.ErrInvalidInput, f.Key)
	}
	return nil
}

// DisplayLabel falls back to the key when no label is configured.
func (f Feed) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Key
}
