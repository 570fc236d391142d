package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YuvaneshSankar/OrbitAI/internal/briefing"
)

// Freshener triggers briefing regeneration when stale or missing.
type Freshener interface {
	EnsureFresh(ctx context.Context) error
}

// BriefingReader reads the persisted briefing document.
type BriefingReader interface {
	Read() (string, error)
	ModTime() (time.Time, error)
}

// Asker answers a conversational query.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// ArchiveLoader loads recent archived briefings.
type ArchiveLoader func(limit int) ([]briefing.ArchiveEntry, error)

// Server is the OrbitAI web server
type Server struct {
	cache    Freshener
	store    BriefingReader
	session  Asker
	archives ArchiveLoader
	router   *gin.Engine
}

// NewServer creates a new web server
func NewServer(cache Freshener, store BriefingReader, session Asker, archives ArchiveLoader) *Server {
	router := gin.Default()

	s := &Server{
		cache:    cache,
		store:    store,
		session:  session,
		archives: archives,
		router:   router,
	}

	router.GET("/", s.handleRoot)
	router.GET("/daily_briefing", s.handleDailyBriefing)
	router.POST("/chat", s.handleChat)

	api := router.Group("/api")
	{
		api.GET("/briefing/history", s.handleBriefingHistory)
	}

	return s
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
