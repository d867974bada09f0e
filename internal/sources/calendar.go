package sources

import (
	"context"

	"rtsd/internal/structures"
)

type CalendarProviderInterface interface {
	Fetch(ctx context.Context) (string, error)
}

// CalendarProvider fetches the raw release calendar feed text. Parsing is
// the calendar package's job; this provider only moves bytes.
type CalendarProvider struct {
	client *Client
	url    string
}

func NewCalendarProvider(conf *structures.Config, client *Client) CalendarProviderInterface {
	return &CalendarProvider{client: client, url: conf.Sources.CalendarURL}
}

func (p *CalendarProvider) Fetch(ctx context.Context) (string, error) {
	return p.client.GetString(ctx, "calendar", p.url)
}
