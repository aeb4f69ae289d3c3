package out

import (
	"context"
	"encoding/json"
	"fmt"

	"studyhub/internal/modules/catalog/service"
	"studyhub/internal/platform/httpapi"
)

type HTTPFeedCounter struct {
	client *httpapi.Client
}

func NewHTTPFeedCounter(client *httpapi.Client) *HTTPFeedCounter {
	return &HTTPFeedCounter{client: client}
}

func (c *HTTPFeedCounter) Count(ctx context.Context, path string) (int, error) {
	var raw json.RawMessage
	if err := c.client.Get(ctx, path, &raw); err != nil {
		return 0, fmt.Errorf("fetch %s: %w", path, err)
	}
	n, err := service.CountItems(raw)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", path, err)
	}
	return n, nil
}
