package countdown

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"rtsd/internal/calendar"
	"rtsd/internal/providers"
	"rtsd/internal/release"
	"rtsd/internal/structures"
)

// Target is the next desktop release the countdown banner points at.
type Target struct {
	Version string     `json:"version"`
	Date    *time.Time `json:"date"`
	Days    int        `json:"days"`
}

// Calculator derives the next-release target from the calendar, with a
// config-injected override map (version -> date) taking precedence. The
// override exists for dates the public feed got wrong or late; when both
// disagree the override wins and the divergence is logged.
type Calculator struct {
	overrides map[string]time.Time
	logger    providers.Logger
}

func NewCalculator(conf *structures.Config, logger providers.Logger) (*Calculator, error) {
	overrides := make(map[string]time.Time, len(conf.Countdown.Overrides))
	for version, raw := range conf.Countdown.Overrides {
		t, err := dateparse.ParseAny(raw)
		if err != nil {
			return nil, fmt.Errorf("countdown override %q: %w", version, err)
		}
		overrides[version] = t
	}
	return &Calculator{overrides: overrides, logger: logger}, nil
}

// Next returns the countdown target following the current desktop release
// version, or nil when it cannot be determined. The target version is the
// next major's .0 release; its date comes from the override map or, failing
// that, the first future calendar event naming that major.
func (c *Calculator) Next(events []calendar.Event, currentRelease string, now time.Time) *Target {
	major := release.ExtractMajor(currentRelease)
	if major == "" {
		return nil
	}
	n, err := strconv.Atoi(major)
	if err != nil {
		return nil
	}
	nextMajor := strconv.Itoa(n + 1)
	nextVersion := nextMajor + ".0"

	fromFeed := firstFutureMention(events, nextMajor, now)

	if override, ok := c.overrides[nextVersion]; ok {
		if fromFeed != nil && !override.Equal(*fromFeed) {
			c.logger.Warnf(providers.TypeApp, "Countdown override for %s (%s) diverges from calendar (%s)",
				nextVersion, override.Format(time.DateOnly), fromFeed.Format(time.DateOnly))
		}
		return target(nextVersion, override, now)
	}
	if fromFeed == nil {
		return nil
	}
	return target(nextVersion, *fromFeed, now)
}

func firstFutureMention(events []calendar.Event, major string, now time.Time) *time.Time {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(major) + `\b`)
	for _, ev := range events {
		if ev.Start == nil || ev.Start.Before(now) {
			continue
		}
		if re.MatchString(ev.Summary) {
			t := *ev.Start
			return &t
		}
	}
	return nil
}

func target(version string, date time.Time, now time.Time) *Target {
	days := int(date.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &Target{Version: version, Date: &date, Days: days}
}
