package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YuvaneshSankar/OrbitAI/internal/briefing"
)

const maxQuerySize = 10 << 10 // 10KB

const apologyMessage = "Sorry, I encountered an error while processing your request. Please try again."

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string  `json:"response"`
	Error    *string `json:"error"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to OrbitAI Backend!",
	})
}

// handleDailyBriefing returns the current briefing, triggering generation
// when the file is stale or missing. Only a total generation failure
// surfaces as an error.
func (s *Server) handleDailyBriefing(c *gin.Context) {
	if err := s.cache.EnsureFresh(c.Request.Context()); err != nil {
		log.Printf("Warning: briefing refresh failed: %v", err)
	}

	content, err := s.store.Read()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "Daily briefing could not be generated",
		})
		return
	}

	parsed, err := briefing.Parse(content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Error retrieving daily briefing: " + err.Error(),
		})
		return
	}

	lastGenerated := ""
	if mod, err := s.store.ModTime(); err == nil {
		lastGenerated = mod.Format("2006-01-02 15:04:05")
	}

	c.JSON(http.StatusOK, gin.H{
		"content":        content,
		"last_generated": lastGenerated,
		"sections":       parsed.Sections(),
	})
}

// handleChat answers a conversational query. Failures are converted to a
// user-facing apology with HTTP 200; this endpoint never returns a 5xx.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.chatError(c, "invalid request body")
		return
	}

	if req.Query == "" {
		s.chatError(c, "query is required")
		return
	}

	if len(req.Query) > maxQuerySize {
		s.chatError(c, "query exceeds maximum size of 10KB")
		return
	}

	answer, err := s.session.Ask(c.Request.Context(), req.Query)
	if err != nil {
		log.Printf("Warning: chat failed: %v", err)
		s.chatError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) chatError(c *gin.Context, detail string) {
	c.JSON(http.StatusOK, chatResponse{
		Response: apologyMessage,
		Error:    &detail,
	})
}

func (s *Server) handleBriefingHistory(c *gin.Context) {
	if s.archives == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"entries": []briefing.ArchiveEntry{},
		})
		return
	}

	entries, err := s.archives(10)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"entries": []briefing.ArchiveEntry{},
		})
		return
	}

	type historyEntry struct {
		GeneratedAt string `json:"generated_at"`
		Events      int    `json:"events"`
		Tasks       int    `json:"tasks"`
		News        int    `json:"news"`
		Suggestions int    `json:"suggestions"`
	}

	out := make([]historyEntry, len(entries))
	for i, e := range entries {
		out[i] = historyEntry{
			GeneratedAt: e.GeneratedAt.Format("2006-01-02"),
			Events:      e.Events,
			Tasks:       e.Tasks,
			News:        e.News,
			Suggestions: e.Suggestions,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": out,
	})
}
