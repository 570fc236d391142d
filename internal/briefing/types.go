package briefing

import "time"

// Section name constants. The markdown codec recognizes exactly these
// sections; they form a closed vocabulary.
const (
	SectionEvents      = "events"
	SectionTasks       = "tasks"
	SectionNews        = "news"
	SectionSuggestions = "suggestions"
)

// Briefing is the structured daily summary. It is created fresh once per
// day (or on demand), immutable after render, and superseded wholesale by
// the next generation.
type Briefing struct {
	Events      []string
	Tasks       []string
	News        []string
	Suggestions []string
	GeneratedAt time.Time
}

// Sections returns the section contents keyed by section name. Every
// section is present even when empty, so API consumers always see all
// four keys.
func (b *Briefing) Sections() map[string][]string {
	return map[string][]string{
		SectionEvents:      emptyNotNil(b.Events),
		SectionTasks:       emptyNotNil(b.Tasks),
		SectionNews:        emptyNotNil(b.News),
		SectionSuggestions: emptyNotNil(b.Suggestions),
	}
}

func emptyNotNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
