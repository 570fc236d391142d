package briefing

import (
	"context"
	"log"
	"time"

	"github.com/YuvaneshSankar/OrbitAI/internal/fetch"
	"github.com/YuvaneshSankar/OrbitAI/internal/llm"
)

// Placeholder lines used when a source cannot be reached. A briefing is
// always assembled even during a partial outage.
const (
	placeholderEvents      = "Calendar events are unavailable right now."
	placeholderTasks       = "Tasks could not be retrieved."
	placeholderNews        = "News and weather are unavailable right now."
	placeholderSuggestions = "No suggestions for today."
)

// Assembler orchestrates the source fetchers and one suggestion-generation
// call into a Briefing.
type Assembler struct {
	calendar fetch.Fetcher
	tasks    fetch.Fetcher
	news     fetch.Fetcher
	llm      llm.Client
	now      func() time.Time
}

// NewAssembler creates a briefing assembler. model may be nil, in which
// case the suggestions section is left empty.
func NewAssembler(calendar, tasks, news fetch.Fetcher, model llm.Client) *Assembler {
	return &Assembler{
		calendar: calendar,
		tasks:    tasks,
		news:     news,
		llm:      model,
		now:      time.Now,
	}
}

// Assemble runs the fetchers in a fixed order (events, tasks, news) for
// deterministic logging, then generates suggestions from the combined
// output. A fetcher failure degrades to a single placeholder line and
// never aborts assembly.
func (a *Assembler) Assemble(ctx context.Context) (*Briefing, error) {
	b := &Briefing{GeneratedAt: a.now()}

	b.Events = a.runFetcher(ctx, a.calendar, placeholderEvents)
	b.Tasks = a.runFetcher(ctx, a.tasks, placeholderTasks)
	b.News = a.runFetcher(ctx, a.news, placeholderNews)

	b.Suggestions = a.generateSuggestions(ctx, b)

	return b, nil
}

func (a *Assembler) runFetcher(ctx context.Context, f fetch.Fetcher, placeholder string) []string {
	if f == nil {
		return nil
	}

	lines, err := f.Fetch(ctx)
	if err != nil {
		log.Printf("Warning: %s fetch failed: %v", f.Name(), err)
		return []string{placeholder}
	}

	log.Printf("INFO: %s fetch returned %d lines", f.Name(), len(lines))
	return lines
}

func (a *Assembler) generateSuggestions(ctx context.Context, b *Briefing) []string {
	if a.llm == nil {
		return nil
	}

	text, err := a.llm.Complete(ctx, llm.SuggestionsPrompt(b.Events, b.Tasks, b.News))
	if err != nil {
		log.Printf("Warning: suggestion generation failed: %v", err)
		return []string{placeholderSuggestions}
	}

	return llm.SplitLines(text)
}
