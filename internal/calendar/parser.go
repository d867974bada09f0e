package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const eventMarker = "BEGIN:VEVENT"

// Event is one parsed calendar entry. Start and End stay nil when their
// raw values could not be parsed; such an event is unsortable by date but
// still matchable by summary text.
type Event struct {
	Summary     string     `json:"summary"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Description string     `json:"description"`
}

// StartKey is the sort key for event ordering: the UTC basic format of the
// start instant, or "" for events without one, so nil starts sort first.
func (e Event) StartKey() string {
	if e.Start == nil {
		return ""
	}
	return e.Start.UTC().Format("20060102T150405Z")
}

// Parse converts a raw ICS-style feed into events, one per VEVENT block.
// The feed is maintained by humans and frequently sloppy; any field that
// fails to parse is dropped from its event rather than rejecting the block
// or the feed. The result is sorted ascending by start, nil starts first.
func Parse(raw string) []Event {
	blocks := strings.Split(raw, eventMarker)
	if len(blocks) < 2 {
		return []Event{}
	}

	events := make([]Event, 0, len(blocks)-1)
	for _, block := range blocks[1:] {
		events = append(events, parseBlock(block))
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartKey() < events[j].StartKey()
	})
	return events
}

func parseBlock(block string) Event {
	var ev Event
	for _, line := range strings.Split(unfold(block), "\n") {
		line = strings.TrimSuffix(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		// Property parameters (e.g. DTSTART;TZID=...) ride on the key,
		// hence prefix matching. DESCRIPTION before DTSTART so the longer
		// D-prefixed name is not shadowed.
		switch {
		case strings.HasPrefix(key, "SUMMARY"):
			ev.Summary = value
		case strings.HasPrefix(key, "DESCRIPTION"):
			ev.Description = value
		case strings.HasPrefix(key, "DTSTART"):
			ev.Start = parseDate(value)
		case strings.HasPrefix(key, "DTEND"):
			ev.End = parseDate(value)
		}
	}
	return ev
}

// unfold reverses the feed's line folding: a physical line starting with a
// space or tab continues the previous logical line, the fold marker and
// the single leading whitespace character are removed.
func unfold(block string) string {
	r := strings.NewReplacer("\r\n ", "", "\r\n\t", "", "\n ", "", "\n\t", "")
	return r.Replace(block)
}

// parseDate handles the feed's two standard date forms and falls back to a
// generic parser for anything else. Unparsable values yield nil.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)

	// Date-time form: 8 digits, 'T', 6 digits, optional 'Z'. Always UTC.
	if n := len(value); (n == 15 || n == 16) && value[8] == 'T' &&
		isDigits(value[:8]) && isDigits(value[9:15]) &&
		(n == 15 || value[15] == 'Z') {
		t, err := time.Parse("20060102T150405", value[:15])
		if err != nil {
			return nil
		}
		return &t
	}

	// Date-only form: local midnight of that day.
	if len(value) == 8 && isDigits(value) {
		t, err := time.ParseInLocation("20060102", value, time.Local)
		if err != nil {
			return nil
		}
		return &t
	}

	t, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
