package models

import (
	"time"

	"rtsd/internal/calendar"
)

// Platform and track names used as snapshot map keys. These are the stable
// JSON contract; consumers index channels as platform -> track -> record.
const (
	PlatformDesktop = "desktop"
	PlatformAndroid = "android"

	TrackDaily   = "daily"
	TrackBeta    = "beta"
	TrackRelease = "release"
	TrackEsr     = "esr"
	TrackEsrNext = "esr-next"
)

// ChannelRecord is the per-(platform, track) result: the current version,
// and the calendar event judged to correspond to it. All fields are nil
// when the upstream value was missing or nothing matched.
type ChannelRecord struct {
	Version      *string    `json:"version"`
	Milestone    *time.Time `json:"milestone"`
	EventSummary *string    `json:"eventSummary"`
}

// StatusSnapshot is one immutable aggregation result. Every refresh cycle
// builds a fresh snapshot; nothing mutates a published one. Milestone and
// EventSummary of every record refer to an event present in Events.
type StatusSnapshot struct {
	FetchedAt time.Time                           `json:"fetchedAt"`
	Channels  map[string]map[string]ChannelRecord `json:"channels"`
	Events    []calendar.Event                    `json:"events"`
}

// DesktopVersions is the flat field map served by the desktop version
// provider, one version string per train. Empty string means the field was
// absent upstream.
type DesktopVersions struct {
	Daily   string
	Beta    string
	Release string
	Esr     string
	EsrNext string
}

// MobileVersions carries the Android train versions. Fields are nil when
// their sub-fetch failed or found nothing; a mobile outage degrades the
// channel instead of failing the snapshot.
type MobileVersions struct {
	Daily   *string
	Beta    *string
	Release *string
}
