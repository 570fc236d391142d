package llm

import (
	"fmt"
	"strings"
)

// Fixed instruction templates. LLM calls are reserved for genuinely
// generative steps: suggestion writing, summarization, relevance scoring,
// and answer generation. Control flow never depends on free-text intent
// parsing.

const suggestionsTemplate = `Based on the following information, generate 3-4 personalized actionable suggestions:

Events:
%s

Tasks:
%s

News and Weather:
%s

Guidelines for suggestions:
1. For meetings: suggest follow-ups, preparation tips, or related actions
2. For tasks: provide study tips, optimal timing, or resource recommendations
3. Weather-related: suggest best times for outdoor activities or precautions
4. News-related: connect current events to the user's tasks or meetings if relevant

Write one suggestion per line as plain sentences, no bullet markers.
Make suggestions specific and practical.`

const newsWeatherTemplate = `Format this news and weather data:

News headlines:
%s

Weather: %s

Requirements:
- Show the 2 most important news items, one per line
- Add 1-2 weather-related lines
- Keep it concise and actionable
- Plain lines only, no bullet markers or numbering`

const relevanceTemplate = `Rate the relevance of the following document to the query on a scale of 1 to 5, where 5 means highly relevant and 1 means unrelated.

Query: %s

Document:
%s

Respond with a single integer between 1 and 5.`

const answerTemplate = `You are a personal assistant with access to the user's emails, calendar events, news, and weather data.

Use ONLY the information provided in the context below. Be specific and detailed using the actual content from the context. If no relevant information is in the context, say "I couldn't find that specific information in your current data."

Context:
%s

User question: %s

Answer:`

// SuggestionsPrompt builds the suggestion-generation instruction from the
// assembled briefing sections.
func SuggestionsPrompt(events, tasks, newsWeather []string) string {
	return fmt.Sprintf(suggestionsTemplate,
		joinOrNone(events),
		joinOrNone(tasks),
		joinOrNone(newsWeather))
}

// NewsWeatherPrompt builds the news/weather tightening instruction.
func NewsWeatherPrompt(headlines []string, weather string) string {
	return fmt.Sprintf(newsWeatherTemplate, joinOrNone(headlines), weather)
}

// RelevancePrompt builds the 1-5 relevance scoring instruction.
func RelevancePrompt(query, document string) string {
	return fmt.Sprintf(relevanceTemplate, query, document)
}

// AnswerPrompt builds the final generation instruction from retrieved
// document contents and the literal user question.
func AnswerPrompt(docs []string, question string) string {
	context := strings.Join(docs, "\n\n")
	if context == "" {
		context = "(no documents found)"
	}
	return fmt.Sprintf(answerTemplate, context, question)
}

// SplitLines splits raw model output into trimmed non-empty lines,
// stripping any bullet markers the model added despite instructions.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "• ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinOrNone(lines []string) string {
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}
