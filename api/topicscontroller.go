package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
)

func (s *Server) registerTopicRoutes(r *gin.Engine) {
	r.GET("/api/topics/suggestions", s.handleTopicSuggestions)
}

// handleTopicSuggestions serves auto-mode brief candidates from the configured
// industry feeds.
func (s *Server) handleTopicSuggestions(c *gin.Context) {
	if s.suggester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no topic feeds configured"})
		return
	}

	max := config.MaxSuggestedTopics
	if raw := c.Query("max"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			max = v
		}
	}

	suggestions, err := s.suggester.Suggest(max)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
