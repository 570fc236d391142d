package fetch

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/YuvaneshSankar/OrbitAI/internal/storage"
)

type mockEventLister struct {
	events []*storage.EventRecord
	err    error
}

func (m *mockEventLister) ListEvents() ([]*storage.EventRecord, error) {
	return m.events, m.err
}

func newTestCalendarFetcher(t *testing.T, events []*storage.EventRecord) *CalendarFetcher {
	t.Helper()
	f := NewCalendarFetcher(&mockEventLister{events: events}, "Asia/Kolkata")
	// Fixed "now": 2026-09-01 10:00 IST
	f.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, f.loc)
	}
	return f
}

func TestCalendarFetch(t *testing.T) {
	t.Run("Given events on several days, When fetched, Then only today's remain", func(t *testing.T) {
		f := newTestCalendarFetcher(t, []*storage.EventRecord{
			{Name: "Standup", StartAt: "2026-09-01T09:30:00+05:30"},
			{Name: "Yesterday's retro", StartAt: "2026-08-31T16:00:00+05:30"},
			{Name: "Tomorrow's planning", StartAt: "2026-09-02T11:00:00+05:30"},
		})

		lines, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !reflect.DeepEqual(lines, []string{"Standup at 9:30 AM"}) {
			t.Errorf("unexpected lines: %v", lines)
		}
	})

	t.Run("Given an offset-less start, When fetched, Then it is read in the target timezone", func(t *testing.T) {
		f := newTestCalendarFetcher(t, []*storage.EventRecord{
			{Name: "Lunch with Priya", StartAt: "2026-09-01T13:00:00"},
		})

		lines, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !reflect.DeepEqual(lines, []string{"Lunch with Priya at 1:00 PM"}) {
			t.Errorf("unexpected lines: %v", lines)
		}
	})

	t.Run("Given a date-only start, When fetched, Then it shows as all-day", func(t *testing.T) {
		f := newTestCalendarFetcher(t, []*storage.EventRecord{
			{Name: "Dentist", StartAt: "2026-09-01"},
		})

		lines, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !reflect.DeepEqual(lines, []string{"Dentist (All day)"}) {
			t.Errorf("unexpected lines: %v", lines)
		}
	})

	t.Run("Given an unparseable start containing today's date, When fetched, Then it degrades to all-day", func(t *testing.T) {
		f := newTestCalendarFetcher(t, []*storage.EventRecord{
			{Name: "Team offsite", StartAt: "sometime on 2026-09-01, morning"},
			{Name: "Garbled", StartAt: "not a date at all"},
		})

		lines, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !reflect.DeepEqual(lines, []string{"Team offsite (All day)"}) {
			t.Errorf("unexpected lines: %v", lines)
		}
	})

	t.Run("Given a UTC start on today's IST date, When fetched, Then the local date decides inclusion", func(t *testing.T) {
		// 2026-08-31T20:00:00Z is 2026-09-01 01:30 IST
		f := newTestCalendarFetcher(t, []*storage.EventRecord{
			{Name: "Late call", StartAt: "2026-08-31T20:00:00Z"},
		})

		lines, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !reflect.DeepEqual(lines, []string{"Late call at 1:30 AM"}) {
			t.Errorf("unexpected lines: %v", lines)
		}
	})

	t.Run("Given a failing store, When fetched, Then the error surfaces", func(t *testing.T) {
		f := NewCalendarFetcher(&mockEventLister{err: errors.New("db locked")}, "Asia/Kolkata")

		if _, err := f.Fetch(context.Background()); err == nil {
			t.Error("expected an error from a failing store")
		}
	})

	t.Run("Given an unknown timezone, When constructed, Then UTC is the fallback", func(t *testing.T) {
		f := NewCalendarFetcher(&mockEventLister{}, "Mars/Olympus_Mons")
		if f.loc != time.UTC {
			t.Errorf("expected UTC fallback, got %v", f.loc)
		}
	})
}
