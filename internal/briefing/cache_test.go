package briefing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type mockGenerator struct {
	mu        sync.Mutex
	CallCount int
	briefing  *Briefing
	err       error
}

func (m *mockGenerator) Assemble(ctx context.Context) (*Briefing, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.briefing, nil
}

func (m *mockGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

func newTestCache(t *testing.T, gen Generator, now time.Time) (*Cache, *Store) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "daily_briefing.md"))
	c := NewCache(store, gen, "")
	c.now = func() time.Time { return now }
	return c, store
}

func TestEnsureFresh(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)

	t.Run("Given no briefing file, When EnsureFresh runs, Then one is generated and written", func(t *testing.T) {
		gen := &mockGenerator{briefing: &Briefing{Events: []string{"Standup at 9:30 AM"}, GeneratedAt: day1}}
		c, store := newTestCache(t, gen, day1)

		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("EnsureFresh failed: %v", err)
		}

		if !store.Exists() {
			t.Fatal("expected briefing file to exist")
		}
		if gen.calls() != 1 {
			t.Errorf("expected 1 generation, got %d", gen.calls())
		}
		if c.LastDate() != "2026-09-01" {
			t.Errorf("unexpected last date: %s", c.LastDate())
		}
	})

	t.Run("Given a same-day briefing, When EnsureFresh runs again, Then generation is skipped", func(t *testing.T) {
		gen := &mockGenerator{briefing: &Briefing{GeneratedAt: day1}}
		c, _ := newTestCache(t, gen, day1)

		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("first EnsureFresh failed: %v", err)
		}
		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("second EnsureFresh failed: %v", err)
		}

		if gen.calls() != 1 {
			t.Errorf("expected 1 generation across two calls, got %d", gen.calls())
		}
	})

	t.Run("Given a previous-day briefing, When EnsureFresh runs, Then it regenerates", func(t *testing.T) {
		gen := &mockGenerator{briefing: &Briefing{GeneratedAt: day1}}
		c, _ := newTestCache(t, gen, day1)

		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("first EnsureFresh failed: %v", err)
		}

		c.now = func() time.Time { return day2 }
		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("second EnsureFresh failed: %v", err)
		}

		if gen.calls() != 2 {
			t.Errorf("expected 2 generations, got %d", gen.calls())
		}
		if c.LastDate() != "2026-09-02" {
			t.Errorf("unexpected last date: %s", c.LastDate())
		}
	})

	t.Run("Given a deleted file on the same day, When EnsureFresh runs, Then it regenerates", func(t *testing.T) {
		gen := &mockGenerator{briefing: &Briefing{GeneratedAt: day1}}
		c, store := newTestCache(t, gen, day1)

		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("first EnsureFresh failed: %v", err)
		}
		if err := os.Remove(store.Path()); err != nil {
			t.Fatalf("removing briefing file: %v", err)
		}
		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("second EnsureFresh failed: %v", err)
		}

		if gen.calls() != 2 {
			t.Errorf("expected regeneration after file removal, got %d generations", gen.calls())
		}
	})

	t.Run("Given concurrent triggers, When both run EnsureFresh, Then generation happens exactly once", func(t *testing.T) {
		gen := &mockGenerator{briefing: &Briefing{GeneratedAt: day1}}
		c, _ := newTestCache(t, gen, day1)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := c.EnsureFresh(context.Background()); err != nil {
					t.Errorf("EnsureFresh failed: %v", err)
				}
			}()
		}
		wg.Wait()

		if gen.calls() != 1 {
			t.Errorf("expected exactly 1 generation under contention, got %d", gen.calls())
		}
	})

	t.Run("Given archiving enabled, When EnsureFresh runs, Then a dated archive is written", func(t *testing.T) {
		gen := &mockGenerator{briefing: &Briefing{
			Events:      []string{"Standup at 9:30 AM"},
			GeneratedAt: day1,
		}}

		archiveDir := filepath.Join(t.TempDir(), "briefings")
		store := NewStore(filepath.Join(t.TempDir(), "daily_briefing.md"))
		c := NewCache(store, gen, archiveDir)
		c.now = func() time.Time { return day1 }

		if err := c.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("EnsureFresh failed: %v", err)
		}

		entries, err := LoadRecentArchives(archiveDir, 10)
		if err != nil {
			t.Fatalf("LoadRecentArchives failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 archive entry, got %d", len(entries))
		}
		if entries[0].Events != 1 {
			t.Errorf("expected 1 event in archive frontmatter, got %d", entries[0].Events)
		}
	})
}
