package match

import (
	"regexp"
	"strings"

	"rtsd/internal/calendar"
	"rtsd/internal/release"
	"rtsd/internal/structures"
)

// Kind selects the rule set applied when correlating a channel's version
// with calendar events.
type Kind string

const (
	// KindDesktop covers the ordinary desktop trains (daily, beta, release).
	KindDesktop Kind = "desktop"
	// KindEsr covers the long-term-support trains, whose versions follow the
	// phase-suffix grammar (145.0a1, 145.0b2, 145.3.1esr).
	KindEsr Kind = "esr"
	// KindMobile covers the Android trains; only events carrying a mobile
	// milestone signature are ever eligible.
	KindMobile Kind = "mobile"
)

// Matcher correlates train versions with calendar events using a tiered
// heuristic. The calendar is maintained by humans and version strings show
// up in many textual forms, so the cascade trades precision for recall:
// the most specific rule that yields any candidate wins.
type Matcher struct {
	product      string
	mobilePrefix string
	mobilePhrase string
	mobileToken  string
}

func New(cfg structures.ProductConfig) *Matcher {
	return &Matcher{
		product:      cfg.Name,
		mobilePrefix: cfg.MobilePrefix,
		mobilePhrase: cfg.MobilePhrase,
		mobileToken:  cfg.MobileToken,
	}
}

// Best returns the single most relevant event for the given version, or nil
// when nothing qualifies. Candidates keep the time-sorted input order; the
// pick is the first candidate, except for the mobile signature fallback
// where the last (most future) event is the better guess.
func (m *Matcher) Best(events []calendar.Event, version string, kind Kind) *calendar.Event {
	set, pickLast := m.cascade(events, version, kind)
	if len(set) == 0 {
		return nil
	}
	if pickLast {
		return &set[len(set)-1]
	}
	return &set[0]
}

// All returns the full candidate set the cascade settles on, in input
// order. Table-style consumers display every candidate instead of
// collapsing to one.
func (m *Matcher) All(events []calendar.Event, version string, kind Kind) []calendar.Event {
	set, _ := m.cascade(events, version, kind)
	return set
}

func (m *Matcher) cascade(events []calendar.Event, version string, kind Kind) ([]calendar.Event, bool) {
	major := release.ExtractMajor(version)

	if kind == KindMobile {
		return m.mobileCascade(events, version, major)
	}

	// Exact substring of the literal version string.
	if version != "" {
		if c := filterContains(events, version); len(c) > 0 {
			return c, false
		}
	}

	if kind == KindEsr {
		if c := m.esrCascade(events, major); len(c) > 0 {
			return c, false
		}
		return events, false
	}

	// Major version as a standalone token, not a mere digit substring.
	if c := filterMajorToken(events, major); len(c) > 0 {
		return c, false
	}
	if c := m.filterProduct(events); len(c) > 0 {
		return c, false
	}
	return events, false
}

// mobileCascade restricts the candidate universe to events carrying a
// mobile milestone signature before any version matching. Events without
// the signature are never eligible for a mobile channel, so there is no
// universal fallback here.
func (m *Matcher) mobileCascade(events []calendar.Event, version, major string) ([]calendar.Event, bool) {
	restricted := m.filterMobile(events)
	if version != "" {
		if c := filterContainsFold(restricted, version); len(c) > 0 {
			return c, false
		}
	}
	if c := filterMajorToken(restricted, major); len(c) > 0 {
		return c, false
	}
	// Events are time-sorted, so the last signature event is the most
	// recent or most future milestone.
	return restricted, true
}

// esrCascade filters the major-token candidates down to the three
// phase-specific identifiers, retrying against the whole event set when
// the narrowed set comes up empty.
func (m *Matcher) esrCascade(events []calendar.Event, major string) []calendar.Event {
	if major == "" {
		return nil
	}
	phases := esrPatterns(major)
	tokens := filterMajorToken(events, major)
	if c := filterAnyPattern(tokens, phases); len(c) > 0 {
		return c
	}
	return filterAnyPattern(events, phases)
}

// esrPatterns builds the phase identifiers for a major version: the early
// preview build, a beta build, and an esr point release with one to three
// trailing numeric components.
func esrPatterns(major string) []*regexp.Regexp {
	q := regexp.QuoteMeta(major)
	return []*regexp.Regexp{
		regexp.MustCompile(`\b` + q + `\.0a1\b`),
		regexp.MustCompile(`\b` + q + `\.0b\d+\b`),
		regexp.MustCompile(`\b` + q + `(\.\d+){1,3}esr\b`),
	}
}

func (m *Matcher) filterMobile(events []calendar.Event) []calendar.Event {
	var out []calendar.Event
	for _, ev := range events {
		if m.isMobileMilestone(ev.Summary) {
			out = append(out, ev)
		}
	}
	return out
}

// isMobileMilestone recognises the textual signatures the calendar uses
// for mobile entries: the product abbreviation at the start of the
// summary, the "<Product> for Android" phrase, or the internal
// abbreviation token.
func (m *Matcher) isMobileMilestone(summary string) bool {
	if m.mobilePrefix != "" && strings.HasPrefix(summary, m.mobilePrefix) {
		return true
	}
	if m.mobilePhrase != "" && containsFold(summary, m.mobilePhrase) {
		return true
	}
	if m.mobileToken != "" && strings.Contains(summary, m.mobileToken) {
		return true
	}
	return false
}

func (m *Matcher) filterProduct(events []calendar.Event) []calendar.Event {
	if m.product == "" {
		return nil
	}
	var out []calendar.Event
	for _, ev := range events {
		if containsFold(ev.Summary, m.product) {
			out = append(out, ev)
		}
	}
	return out
}

func filterContains(events []calendar.Event, needle string) []calendar.Event {
	var out []calendar.Event
	for _, ev := range events {
		if strings.Contains(ev.Summary, needle) {
			out = append(out, ev)
		}
	}
	return out
}

func filterContainsFold(events []calendar.Event, needle string) []calendar.Event {
	var out []calendar.Event
	for _, ev := range events {
		if containsFold(ev.Summary, needle) {
			out = append(out, ev)
		}
	}
	return out
}

func filterMajorToken(events []calendar.Event, major string) []calendar.Event {
	if major == "" {
		return nil
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(major) + `\b`)
	var out []calendar.Event
	for _, ev := range events {
		if re.MatchString(ev.Summary) {
			out = append(out, ev)
		}
	}
	return out
}

func filterAnyPattern(events []calendar.Event, patterns []*regexp.Regexp) []calendar.Event {
	var out []calendar.Event
	for _, ev := range events {
		for _, re := range patterns {
			if re.MatchString(ev.Summary) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}
