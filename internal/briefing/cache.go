package briefing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Generator assembles a fresh briefing.
type Generator interface {
	Assemble(ctx context.Context) (*Briefing, error)
}

// Cache guards the generate-if-stale decision with a single-flight mutex:
// two near-simultaneous triggers (an incoming request and the startup
// background task) run generation exactly once per day.
type Cache struct {
	mu         sync.Mutex
	lastDate   string // YYYY-MM-DD of the last successful generation
	store      *Store
	generator  Generator
	archiveDir string // empty disables archiving
	now        func() time.Time
}

// NewCache creates a briefing cache. The last-generated date is seeded
// from the existing file's modification time so a restart does not force
// a same-day regeneration.
func NewCache(store *Store, generator Generator, archiveDir string) *Cache {
	c := &Cache{
		store:      store,
		generator:  generator,
		archiveDir: archiveDir,
		now:        time.Now,
	}

	if mod, err := store.ModTime(); err == nil {
		c.lastDate = mod.Format("2006-01-02")
	}

	return c
}

// EnsureFresh regenerates the briefing when the file is missing or the
// last generation happened on an earlier date. The whole check-then-act
// runs under the mutex, so concurrent callers block until the first one
// finishes and then observe a fresh file.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.now().Format("2006-01-02")
	if c.lastDate == today && c.store.Exists() {
		return nil
	}

	log.Printf("INFO: generating daily briefing for %s", today)

	b, err := c.generator.Assemble(ctx)
	if err != nil {
		return fmt.Errorf("briefing generation failed: %w", err)
	}

	rendered := Render(b)
	if err := c.store.Write(rendered); err != nil {
		return fmt.Errorf("briefing write failed: %w", err)
	}

	if c.archiveDir != "" {
		if err := SaveArchive(c.archiveDir, b, rendered); err != nil {
			// Archive failure never blocks the briefing itself
			log.Printf("Warning: briefing archive failed: %v", err)
		}
	}

	c.lastDate = today
	return nil
}

// LastDate returns the date of the last successful generation, empty when
// none happened yet.
func (c *Cache) LastDate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDate
}
