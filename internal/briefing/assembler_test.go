package briefing

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type mockFetcher struct {
	name  string
	lines []string
	err   error

	mu        sync.Mutex
	CallCount int
}

func (m *mockFetcher) Name() string { return m.name }

func (m *mockFetcher) Fetch(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()
	return m.lines, m.err
}

type mockLLM struct {
	response string
	err      error

	mu        sync.Mutex
	CallCount int
	Prompts   []string
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.CallCount++
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestAssemble(t *testing.T) {
	t.Run("Given healthy sources, When assembled, Then all sections are filled", func(t *testing.T) {
		calendar := &mockFetcher{name: "calendar", lines: []string{"Standup at 9:30 AM"}}
		tasks := &mockFetcher{name: "tasks", lines: []string{"Finish quarterly report"}}
		news := &mockFetcher{name: "news", lines: []string{"Markets rally on rate cut"}}
		model := &mockLLM{response: "Prepare talking points.\nBlock focus time after lunch."}

		a := NewAssembler(calendar, tasks, news, model)
		a.now = func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) }

		b, err := a.Assemble(context.Background())
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}

		if !reflect.DeepEqual(b.Events, []string{"Standup at 9:30 AM"}) {
			t.Errorf("unexpected events: %v", b.Events)
		}
		if !reflect.DeepEqual(b.Suggestions, []string{"Prepare talking points.", "Block focus time after lunch."}) {
			t.Errorf("unexpected suggestions: %v", b.Suggestions)
		}
		if model.CallCount != 1 {
			t.Errorf("expected 1 LLM call, got %d", model.CallCount)
		}
	})

	t.Run("Given a failing source, When assembled, Then its section holds a placeholder and the rest survive", func(t *testing.T) {
		calendar := &mockFetcher{name: "calendar", err: errors.New("store offline")}
		tasks := &mockFetcher{name: "tasks", lines: []string{"Finish quarterly report"}}
		news := &mockFetcher{name: "news", lines: []string{"Markets rally on rate cut"}}

		a := NewAssembler(calendar, tasks, news, nil)

		b, err := a.Assemble(context.Background())
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}

		if !reflect.DeepEqual(b.Events, []string{placeholderEvents}) {
			t.Errorf("expected events placeholder, got %v", b.Events)
		}
		if !reflect.DeepEqual(b.Tasks, []string{"Finish quarterly report"}) {
			t.Errorf("unexpected tasks: %v", b.Tasks)
		}
	})

	t.Run("Given a failing suggestion model, When assembled, Then suggestions degrade to a placeholder", func(t *testing.T) {
		calendar := &mockFetcher{name: "calendar", lines: []string{"Standup at 9:30 AM"}}
		tasks := &mockFetcher{name: "tasks", lines: []string{"Finish quarterly report"}}
		news := &mockFetcher{name: "news", lines: []string{"Markets rally on rate cut"}}
		model := &mockLLM{err: errors.New("rate limited")}

		a := NewAssembler(calendar, tasks, news, model)

		b, err := a.Assemble(context.Background())
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}

		if !reflect.DeepEqual(b.Suggestions, []string{placeholderSuggestions}) {
			t.Errorf("expected suggestions placeholder, got %v", b.Suggestions)
		}
	})

	t.Run("Given no model, When assembled, Then suggestions are empty and no call is made", func(t *testing.T) {
		calendar := &mockFetcher{name: "calendar"}
		tasks := &mockFetcher{name: "tasks"}
		news := &mockFetcher{name: "news"}

		a := NewAssembler(calendar, tasks, news, nil)

		b, err := a.Assemble(context.Background())
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}

		if len(b.Suggestions) != 0 {
			t.Errorf("expected no suggestions, got %v", b.Suggestions)
		}
	})
}
