package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtsd/internal/structures"
)

func testConfig(desktopURL, nightlyURL, tagsURL, calendarURL string) *structures.Config {
	return &structures.Config{
		Product: structures.ProductConfig{
			Name:      "Thunderbird",
			TagPrefix: "THUNDERBIRD",
		},
		Sources: structures.SourcesConfig{
			DesktopURL:  desktopURL,
			NightlyURL:  nightlyURL,
			TagsURL:     tagsURL,
			CalendarURL: calendarURL,
			Timeout:     2 * time.Second,
		},
	}
}

func TestDesktopProvider_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"LATEST_THUNDERBIRD_NIGHTLY_VERSION": "146.0a1",
			"LATEST_THUNDERBIRD_DEVEL_VERSION": "145.0b2",
			"LATEST_THUNDERBIRD_VERSION": "144.0.1",
			"THUNDERBIRD_ESR": "140.3.0esr",
			"THUNDERBIRD_ESR_NEXT": "145.0esr"
		}`))
	}))
	defer srv.Close()

	conf := testConfig(srv.URL, "", "", "")
	p := NewDesktopProvider(conf, NewHTTPClient(conf))

	got, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "146.0a1", got.Daily)
	assert.Equal(t, "145.0b2", got.Beta)
	assert.Equal(t, "144.0.1", got.Release)
	assert.Equal(t, "140.3.0esr", got.Esr)
	assert.Equal(t, "145.0esr", got.EsrNext)
}

func TestDesktopProvider_Non200IsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	conf := testConfig(srv.URL, "", "", "")
	p := NewDesktopProvider(conf, NewHTTPClient(conf))

	_, err := p.Fetch(context.Background())
	require.Error(t, err)
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "desktop-versions", ue.Source)
}

func TestNightlyProvider_ExtractsVersionFromListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><a href="thunderbird-146.0a1.multi.android.apk">thunderbird-146.0a1.multi.android.apk</a></html>`))
	}))
	defer srv.Close()

	conf := testConfig("", srv.URL, "", "")
	p := NewNightlyProvider(conf, NewHTTPClient(conf))

	got, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "146.0a1", got)
}

func TestNightlyProvider_StopsBeforeNonVersionSuffix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="thunderbird-147.0b2.en-US.android-arm64-v8a.apk">file</a>`))
	}))
	defer srv.Close()

	conf := testConfig("", srv.URL, "", "")
	p := NewNightlyProvider(conf, NewHTTPClient(conf))

	got, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "147.0b2", got)
}

func TestNightlyProvider_NoMatchDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>nothing useful here</html>`))
	}))
	defer srv.Close()

	conf := testConfig("", srv.URL, "", "")
	p := NewNightlyProvider(conf, NewHTTPClient(conf))

	got, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTagProvider_PreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"THUNDERBIRD_14_0b2"},{"name":"THUNDERBIRD_14_0b1"},{"name":"THUNDERBIRD_13_0"}]`))
	}))
	defer srv.Close()

	conf := testConfig("", "", srv.URL, "")
	p := NewTagProvider(conf, NewHTTPClient(conf))

	got, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"THUNDERBIRD_14_0b2", "THUNDERBIRD_14_0b1", "THUNDERBIRD_13_0"}, got)
}

func TestCalendarProvider_ReturnsRawText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BEGIN:VCALENDAR\r\nBEGIN:VEVENT\r\nSUMMARY:x\r\nEND:VEVENT\r\n"))
	}))
	defer srv.Close()

	conf := testConfig("", "", "", srv.URL)
	p := NewCalendarProvider(conf, NewHTTPClient(conf))

	got, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "BEGIN:VEVENT")
}

func TestCalendarProvider_ConnectionRefused(t *testing.T) {
	conf := testConfig("", "", "", "http://127.0.0.1:1")
	p := NewCalendarProvider(conf, NewHTTPClient(conf))

	_, err := p.Fetch(context.Background())
	require.Error(t, err)
	var ue *UpstreamError
	assert.True(t, errors.As(err, &ue))
}
