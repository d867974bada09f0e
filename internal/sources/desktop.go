package sources

import (
	"context"

	"rtsd/internal/models"
	"rtsd/internal/structures"
)

type DesktopProviderInterface interface {
	Fetch(ctx context.Context) (models.DesktopVersions, error)
}

// desktopPayload mirrors the product-details JSON: one flat map of named
// fields to version strings, one per train.
type desktopPayload struct {
	Daily   string `json:"LATEST_THUNDERBIRD_NIGHTLY_VERSION"`
	Beta    string `json:"LATEST_THUNDERBIRD_DEVEL_VERSION"`
	Release string `json:"LATEST_THUNDERBIRD_VERSION"`
	Esr     string `json:"THUNDERBIRD_ESR"`
	EsrNext string `json:"THUNDERBIRD_ESR_NEXT"`
}

type DesktopProvider struct {
	client *Client
	url    string
}

func NewDesktopProvider(conf *structures.Config, client *Client) DesktopProviderInterface {
	return &DesktopProvider{client: client, url: conf.Sources.DesktopURL}
}

func (p *DesktopProvider) Fetch(ctx context.Context) (models.DesktopVersions, error) {
	var payload desktopPayload
	if err := p.client.GetJSON(ctx, "desktop-versions", p.url, &payload); err != nil {
		return models.DesktopVersions{}, err
	}
	return models.DesktopVersions{
		Daily:   payload.Daily,
		Beta:    payload.Beta,
		Release: payload.Release,
		Esr:     payload.Esr,
		EsrNext: payload.EsrNext,
	}, nil
}
