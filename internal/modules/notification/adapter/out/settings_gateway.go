package out

import (
	"context"

	"studyhub/internal/modules/notification/domain"
	"studyhub/internal/platform/httpapi"
)

const settingsPath = "/notifications/settings"

type HTTPSettingsGateway struct {
	client *httpapi.Client
}

func NewHTTPSettingsGateway(client *httpapi.Client) *HTTPSettingsGateway {
	return &HTTPSettingsGateway{client: client}
}

func (g *HTTPSettingsGateway) GetSettings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	err := g.client.Get(ctx, settingsPath, &settings)
	return settings, err
}

func (g *HTTPSettingsGateway) UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	var updated domain.Settings
	if err := g.client.Put(ctx, settingsPath, settings, &updated); err != nil {
		return domain.Settings{}, err
	}
	return updated, nil
}
