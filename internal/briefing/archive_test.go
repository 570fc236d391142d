package briefing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchive(t *testing.T) {
	day1 := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	archive := func(t *testing.T, dir string, day time.Time, events int) {
		t.Helper()
		b := &Briefing{GeneratedAt: day}
		for i := 0; i < events; i++ {
			b.Events = append(b.Events, "event")
		}
		if err := SaveArchive(dir, b, Render(b)); err != nil {
			t.Fatalf("SaveArchive failed: %v", err)
		}
	}

	t.Run("Given a saved archive, When loaded, Then frontmatter counts round-trip", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "briefings")
		b := &Briefing{
			Events:      []string{"Standup at 9:30 AM", "Dentist (All day)"},
			Tasks:       []string{"Finish quarterly report"},
			News:        []string{"Markets rally on rate cut"},
			Suggestions: []string{"Prepare talking points."},
			GeneratedAt: day3,
		}

		if err := SaveArchive(dir, b, Render(b)); err != nil {
			t.Fatalf("SaveArchive failed: %v", err)
		}

		entries, err := LoadRecentArchives(dir, 10)
		if err != nil {
			t.Fatalf("LoadRecentArchives failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}

		e := entries[0]
		if e.Events != 2 || e.Tasks != 1 || e.News != 1 || e.Suggestions != 1 {
			t.Errorf("unexpected counts: %+v", e)
		}
		if !strings.Contains(e.Body, "# Daily Briefing") {
			t.Errorf("archive body missing rendered briefing: %q", e.Body)
		}
	})

	t.Run("Given several archives, When loaded with a limit, Then newest come first", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "briefings")
		archive(t, dir, day1, 1)
		archive(t, dir, day2, 2)
		archive(t, dir, day3, 3)

		entries, err := LoadRecentArchives(dir, 2)
		if err != nil {
			t.Fatalf("LoadRecentArchives failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Events != 3 || entries[1].Events != 2 {
			t.Errorf("wrong order: %+v", entries)
		}
	})

	t.Run("Given a malformed archive file, When loading, Then it is skipped", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "briefings")
		archive(t, dir, day1, 1)

		bad := filepath.Join(dir, "2026-08-31.md")
		if err := os.WriteFile(bad, []byte("no frontmatter here\n"), 0644); err != nil {
			t.Fatalf("writing bad file: %v", err)
		}

		entries, err := LoadRecentArchives(dir, 10)
		if err != nil {
			t.Fatalf("LoadRecentArchives failed: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected malformed file to be skipped, got %d entries", len(entries))
		}
	})

	t.Run("Given a same-day save, When repeated, Then the dated file is overwritten not duplicated", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "briefings")
		archive(t, dir, day3, 1)
		archive(t, dir, day3, 4)

		entries, err := LoadRecentArchives(dir, 10)
		if err != nil {
			t.Fatalf("LoadRecentArchives failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Events != 4 {
			t.Errorf("expected latest save to win, got %d events", entries[0].Events)
		}
	})
}
