package llm

import (
	"reflect"
	"strings"
	"testing"
)

func TestPrompts(t *testing.T) {
	t.Run("Given briefing sections, When building the suggestions prompt, Then each is embedded", func(t *testing.T) {
		prompt := SuggestionsPrompt(
			[]string{"Standup at 9:30 AM"},
			[]string{"Finish quarterly report"},
			[]string{"Weather: 28.4°C"},
		)

		for _, want := range []string{"Standup at 9:30 AM", "Finish quarterly report", "Weather: 28.4°C"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("Given empty sections, When building the suggestions prompt, Then they read as none", func(t *testing.T) {
		prompt := SuggestionsPrompt(nil, nil, nil)
		if strings.Count(prompt, "(none)") != 3 {
			t.Errorf("expected three (none) markers:\n%s", prompt)
		}
	})

	t.Run("Given no documents, When building the answer prompt, Then the context reads as empty", func(t *testing.T) {
		prompt := AnswerPrompt(nil, "when is my standup?")
		if !strings.Contains(prompt, "(no documents found)") {
			t.Errorf("expected empty-context marker:\n%s", prompt)
		}
		if !strings.Contains(prompt, "when is my standup?") {
			t.Error("prompt missing the user question")
		}
	})

	t.Run("Given a query and document, When building the relevance prompt, Then both appear", func(t *testing.T) {
		prompt := RelevancePrompt("standup time", "Calendar invite for the standup")
		if !strings.Contains(prompt, "standup time") || !strings.Contains(prompt, "Calendar invite") {
			t.Errorf("prompt missing inputs:\n%s", prompt)
		}
	})
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain lines pass through",
			input: "First suggestion.\nSecond suggestion.",
			want:  []string{"First suggestion.", "Second suggestion."},
		},
		{
			name:  "bullet markers are stripped",
			input: "- dash item\n• dot item\n* star item",
			want:  []string{"dash item", "dot item", "star item"},
		},
		{
			name:  "blank and whitespace lines are dropped",
			input: "first\n\n   \nsecond\n",
			want:  []string{"first", "second"},
		},
		{
			name:  "empty input yields nothing",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
