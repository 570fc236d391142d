package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YuvaneshSankar/OrbitAI/internal/storage"
)

// EventLister provides calendar events from the document store.
type EventLister interface {
	ListEvents() ([]*storage.EventRecord, error)
}

// CalendarFetcher filters the persisted event set down to today's events
// in a fixed target timezone.
type CalendarFetcher struct {
	events EventLister
	loc    *time.Location
	now    func() time.Time
}

// NewCalendarFetcher creates a calendar fetcher. tz is an IANA zone name;
// an unknown zone falls back to UTC.
func NewCalendarFetcher(events EventLister, tz string) *CalendarFetcher {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return &CalendarFetcher{
		events: events,
		loc:    loc,
		now:    time.Now,
	}
}

func (f *CalendarFetcher) Name() string { return "calendar" }

// Fetch returns one line per event starting today. Events with an
// unparseable start time degrade to a literal date-substring match; events
// failing both checks are omitted from today's view but stay in the store.
func (f *CalendarFetcher) Fetch(ctx context.Context) ([]string, error) {
	records, err := f.events.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	today := f.now().In(f.loc).Format("2006-01-02")

	var lines []string
	for _, rec := range records {
		start, parseErr := parseEventStart(rec.StartAt, f.loc)
		if parseErr == nil {
			if start.In(f.loc).Format("2006-01-02") != today {
				continue
			}
			lines = append(lines, formatEventLine(rec.Name, rec.StartAt, start, f.loc))
			continue
		}

		// Fallback: literal date substring check on the raw start string
		if strings.Contains(rec.StartAt, today) {
			lines = append(lines, fmt.Sprintf("%s (All day)", rec.Name))
		}
	}

	return lines, nil
}

// parseEventStart parses an upstream ISO-8601 start time. Upstream exports
// sometimes strip the UTC offset, so offset-less forms are interpreted in
// the target timezone.
func parseEventStart(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable start time: %q", raw)
}

func formatEventLine(name, raw string, start time.Time, loc *time.Location) string {
	// Date-only starts are all-day events
	if len(strings.TrimSpace(raw)) == len("2006-01-02") {
		return fmt.Sprintf("%s (All day)", name)
	}
	return fmt.Sprintf("%s at %s", name, start.In(loc).Format("3:04 PM"))
}
