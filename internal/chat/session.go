package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/YuvaneshSankar/OrbitAI/internal/llm"
	"github.com/YuvaneshSankar/OrbitAI/internal/retrieval"
	"github.com/YuvaneshSankar/OrbitAI/internal/storage"
)

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const defaultWindowSize = 20

// Turn is one exchange half in the conversation history.
type Turn struct {
	Role string
	Text string
}

// Retriever returns candidate documents for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]retrieval.Document, error)
}

// Session holds short-term chat history and answers questions over the
// retrieved documents. History grows per exchange and is capped by a
// sliding window; it lives only as long as the session.
type Session struct {
	id         string
	mu         sync.Mutex
	history    []Turn
	engine     Retriever
	llm        llm.Client
	windowSize int
	retrieveK  int
}

// NewSession creates a conversation session. windowSize <= 0 uses the
// default cap.
func NewSession(engine Retriever, model llm.Client, windowSize int) *Session {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &Session{
		id:         storage.GenerateID(),
		engine:     engine,
		llm:        model,
		windowSize: windowSize,
		retrieveK:  5,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Ask retrieves context for the query (history-aware), generates an
// answer, and records both turns.
func (s *Session) Ask(ctx context.Context, query string) (string, error) {
	answer, _, err := s.AskWithSources(ctx, query)
	return answer, err
}

// AskWithSources is Ask plus the retrieved documents the answer was
// grounded on, for callers that display them.
func (s *Session) AskWithSources(ctx context.Context, query string) (string, []retrieval.Document, error) {
	s.mu.Lock()
	retrievalQuery := s.buildRetrievalQuery(query)
	s.mu.Unlock()

	docs, err := s.engine.Retrieve(ctx, retrievalQuery, s.retrieveK)
	if err != nil {
		return "", nil, fmt.Errorf("retrieval failed: %w", err)
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}

	answer, err := s.llm.Complete(ctx, llm.AnswerPrompt(contents, query))
	if err != nil {
		return "", nil, fmt.Errorf("answer generation failed: %w", err)
	}

	s.mu.Lock()
	s.history = append(s.history,
		Turn{Role: RoleUser, Text: query},
		Turn{Role: RoleAssistant, Text: answer})
	if len(s.history) > s.windowSize {
		s.history = s.history[len(s.history)-s.windowSize:]
	}
	s.mu.Unlock()

	return answer, docs, nil
}

// History returns a copy of the current conversation history.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// buildRetrievalQuery prefixes the query with a role-labeled transcript of
// prior turns so retrieval is history-aware. Caller holds the lock.
func (s *Session) buildRetrievalQuery(query string) string {
	if len(s.history) == 0 {
		return query
	}

	var sb strings.Builder
	for _, turn := range s.history {
		switch turn.Role {
		case RoleUser:
			sb.WriteString("User: ")
		case RoleAssistant:
			sb.WriteString("Assistant: ")
		}
		sb.WriteString(turn.Text)
		sb.WriteString("\n")
	}
	sb.WriteString(query)
	return sb.String()
}
