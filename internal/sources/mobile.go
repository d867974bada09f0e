package sources

import (
	"context"
	"regexp"
	"strings"

	"rtsd/internal/structures"
)

type NightlyProviderInterface interface {
	Fetch(ctx context.Context) (string, error)
}

type TagProviderInterface interface {
	Fetch(ctx context.Context) ([]string, error)
}

// NightlyProvider scrapes the Android nightly version out of an upstream
// directory listing by looking for the first product-<version>.<ext>
// artifact filename. A listing without a matching filename is a parse
// degradation, not an error: the version is simply "".
type NightlyProvider struct {
	client  *Client
	url     string
	pattern *regexp.Regexp
}

func NewNightlyProvider(conf *structures.Config, client *Client) NightlyProviderInterface {
	name := regexp.QuoteMeta(strings.ToLower(conf.Product.Name))
	// Every dot-separated version component starts with a digit, so the
	// capture stops before locale and platform suffixes like .multi.android.
	return &NightlyProvider{
		client:  client,
		url:     conf.Sources.NightlyURL,
		pattern: regexp.MustCompile(`(?i)` + name + `-([0-9][0-9a-z]*(?:\.[0-9][0-9a-z]*)*)\.`),
	}
}

func (p *NightlyProvider) Fetch(ctx context.Context) (string, error) {
	listing, err := p.client.GetString(ctx, "mobile-nightly", p.url)
	if err != nil {
		return "", err
	}
	m := p.pattern.FindStringSubmatch(listing)
	if m == nil {
		return "", nil
	}
	return m[1], nil
}

// TagProvider lists source-control tag names in the order the upstream
// returns them. Classification into beta/release happens in the
// aggregator.
type TagProvider struct {
	client *Client
	url    string
}

type tagRecord struct {
	Name string `json:"name"`
}

func NewTagProvider(conf *structures.Config, client *Client) TagProviderInterface {
	return &TagProvider{client: client, url: conf.Sources.TagsURL}
}

func (p *TagProvider) Fetch(ctx context.Context) ([]string, error) {
	var records []tagRecord
	if err := p.client.GetJSON(ctx, "mobile-tags", p.url, &records); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names, nil
}
