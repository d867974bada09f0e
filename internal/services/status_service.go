package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rtsd/internal/calendar"
	"rtsd/internal/match"
	"rtsd/internal/models"
	"rtsd/internal/providers"
	"rtsd/internal/release"
	"rtsd/internal/sources"
	"rtsd/internal/structures"
)

// ErrUnknownChannel marks a (platform, track) pair outside the known
// channel tables.
var ErrUnknownChannel = errors.New("unknown channel")

type StatusServiceInterface interface {
	BuildSnapshot(ctx context.Context) (*models.StatusSnapshot, error)
	ChannelMilestones(ctx context.Context, platform, track string) ([]calendar.Event, error)
}

// StatusService aggregates the release-train status: it fetches all
// upstream sources concurrently, normalizes the versions and correlates
// each channel with its calendar milestone. Every call produces a fresh
// immutable snapshot; the service holds no state between calls.
//
// Failure policy: the desktop version map and the calendar are the primary
// content, so either failing aborts the whole build. The two Android
// sub-fetches degrade to nil fields instead — a mobile outage should not
// take the desktop trains off the board.
type StatusService struct {
	conf     *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	desktop  sources.DesktopProviderInterface
	nightly  sources.NightlyProviderInterface
	tags     sources.TagProviderInterface
	calendar sources.CalendarProviderInterface
	matcher  *match.Matcher
}

func NewStatusService(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	desktop sources.DesktopProviderInterface,
	nightly sources.NightlyProviderInterface,
	tags sources.TagProviderInterface,
	cal sources.CalendarProviderInterface,
	matcher *match.Matcher,
) StatusServiceInterface {
	return &StatusService{
		conf:     conf,
		logger:   logger,
		metrics:  metrics,
		desktop:  desktop,
		nightly:  nightly,
		tags:     tags,
		calendar: cal,
		matcher:  matcher,
	}
}

func (s *StatusService) BuildSnapshot(ctx context.Context) (*models.StatusSnapshot, error) {
	buildStart := time.Now()

	var (
		desktop models.DesktopVersions
		deskErr error
		mobile  models.MobileVersions
		events  []calendar.Event
		calErr  error
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		desktop, deskErr = s.timedDesktopFetch(ctx)
	}()

	go func() {
		defer wg.Done()
		mobile = s.fetchMobile(ctx)
	}()

	go func() {
		defer wg.Done()
		events, calErr = s.timedCalendarFetch(ctx)
	}()

	wg.Wait()

	if deskErr != nil {
		return nil, deskErr
	}
	if calErr != nil {
		return nil, calErr
	}

	snap := &models.StatusSnapshot{
		FetchedAt: time.Now(),
		Channels: map[string]map[string]models.ChannelRecord{
			models.PlatformDesktop: {
				models.TrackDaily:   s.record(events, desktop.Daily, match.KindDesktop),
				models.TrackBeta:    s.record(events, desktop.Beta, match.KindDesktop),
				models.TrackRelease: s.record(events, desktop.Release, match.KindDesktop),
				models.TrackEsr:     s.record(events, desktop.Esr, match.KindEsr),
				models.TrackEsrNext: s.record(events, desktop.EsrNext, match.KindEsr),
			},
			models.PlatformAndroid: {
				models.TrackDaily:   s.record(events, deref(mobile.Daily), match.KindMobile),
				models.TrackBeta:    s.record(events, deref(mobile.Beta), match.KindMobile),
				models.TrackRelease: s.record(events, deref(mobile.Release), match.KindMobile),
			},
		},
		Events: events,
	}

	s.metrics.ObserveSnapshotBuild(time.Since(buildStart))
	s.logger.Infof(providers.TypeApp, "Snapshot built: %d events, %s", len(events), time.Since(buildStart))
	return snap, nil
}

// ChannelMilestones returns the full matcher candidate set for one
// channel, for tabular display. Same cascade as the per-channel best
// match, without collapsing to a single event.
func (s *StatusService) ChannelMilestones(ctx context.Context, platform, track string) ([]calendar.Event, error) {
	kind, err := kindFor(platform, track)
	if err != nil {
		return nil, err
	}
	snap, err := s.BuildSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	rec := snap.Channels[platform][track]
	return s.matcher.All(snap.Events, deref(rec.Version), kind), nil
}

func (s *StatusService) timedDesktopFetch(ctx context.Context) (models.DesktopVersions, error) {
	start := time.Now()
	v, err := s.desktop.Fetch(ctx)
	s.metrics.ObserveUpstreamFetch("desktop-versions", time.Since(start))
	if err != nil {
		s.metrics.IncUpstreamErrors("desktop-versions")
		s.logger.Errorf(providers.TypeFetch, "Desktop version fetch failed: %s", err)
	}
	return v, err
}

func (s *StatusService) timedCalendarFetch(ctx context.Context) ([]calendar.Event, error) {
	start := time.Now()
	raw, err := s.calendar.Fetch(ctx)
	s.metrics.ObserveUpstreamFetch("calendar", time.Since(start))
	if err != nil {
		s.metrics.IncUpstreamErrors("calendar")
		s.logger.Errorf(providers.TypeFetch, "Calendar fetch failed: %s", err)
		return nil, err
	}
	return calendar.Parse(raw), nil
}

// fetchMobile runs the nightly scrape and the tag listing as a nested
// join. Each sub-fetch recovers its own error to nil fields.
func (s *StatusService) fetchMobile(ctx context.Context) models.MobileVersions {
	var (
		mv  sync.Mutex
		out models.MobileVersions
		wg  sync.WaitGroup
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		start := time.Now()
		v, err := s.nightly.Fetch(ctx)
		s.metrics.ObserveUpstreamFetch("mobile-nightly", time.Since(start))
		if err != nil {
			s.metrics.IncUpstreamErrors("mobile-nightly")
			s.logger.Warnf(providers.TypeFetch, "Mobile nightly fetch failed: %s", err)
			return
		}
		if v != "" {
			mv.Lock()
			out.Daily = &v
			mv.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		start := time.Now()
		names, err := s.tags.Fetch(ctx)
		s.metrics.ObserveUpstreamFetch("mobile-tags", time.Since(start))
		if err != nil {
			s.metrics.IncUpstreamErrors("mobile-tags")
			s.logger.Warnf(providers.TypeFetch, "Mobile tag fetch failed: %s", err)
			return
		}
		beta, rel := classifyTags(names, s.conf.Product.TagPrefix)
		mv.Lock()
		out.Beta = beta
		out.Release = rel
		mv.Unlock()
	}()

	wg.Wait()
	return out
}

// classifyTags scans tags in provider order: the first bN-suffixed version
// becomes the beta train, the first version without any prerelease phase
// becomes the release train.
func classifyTags(names []string, prefix string) (beta, rel *string) {
	for _, name := range names {
		v := release.DecodeTag(name, prefix)
		if v == "" {
			continue
		}
		switch {
		case beta == nil && release.IsBeta(v):
			beta = ptr(v)
		case rel == nil && !release.IsPrerelease(v):
			rel = ptr(v)
		}
		if beta != nil && rel != nil {
			break
		}
	}
	return beta, rel
}

func (s *StatusService) record(events []calendar.Event, version string, kind match.Kind) models.ChannelRecord {
	var rec models.ChannelRecord
	if version != "" {
		rec.Version = ptr(version)
	}
	ev := s.matcher.Best(events, version, kind)
	if ev == nil {
		return rec
	}
	rec.EventSummary = ptr(ev.Summary)
	if ev.Start != nil {
		t := *ev.Start
		rec.Milestone = &t
	}
	return rec
}

func kindFor(platform, track string) (match.Kind, error) {
	switch platform {
	case models.PlatformDesktop:
		switch track {
		case models.TrackDaily, models.TrackBeta, models.TrackRelease:
			return match.KindDesktop, nil
		case models.TrackEsr, models.TrackEsrNext:
			return match.KindEsr, nil
		}
	case models.PlatformAndroid:
		switch track {
		case models.TrackDaily, models.TrackBeta, models.TrackRelease:
			return match.KindMobile, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrUnknownChannel, platform, track)
}

func ptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
