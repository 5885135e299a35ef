package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerQueueRoutes(r *gin.Engine) {
	g := r.Group("/api/queue")
	g.GET("", s.handleListQueue)
	g.POST("", s.handleEnqueuePost)
}

func (s *Server) handleListQueue(c *gin.Context) {
	if s.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "post queue not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": s.queue.Posts()})
}

type enqueueRequest struct {
	MediaURL  string    `json:"media_url" binding:"required"`
	Caption   string    `json:"caption"`
	Platforms []string  `json:"platforms" binding:"required"`
	PublishAt time.Time `json:"publish_at" binding:"required"`
}

func (s *Server) handleEnqueuePost(c *gin.Context) {
	if s.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "post queue not configured"})
		return
	}

	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := s.queue.Enqueue(req.MediaURL, req.Caption, req.Platforms, req.PublishAt)
	c.JSON(http.StatusCreated, post)
}
