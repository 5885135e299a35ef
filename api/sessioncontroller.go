package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BethCNC/dad-social-media-agent-sub000/client"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

func (s *Server) registerSessionRoutes(r *gin.Engine) {
	g := r.Group("/api/sessions")
	g.POST("", s.handleCreateSession)
	g.GET("/:id", s.handleGetSession)
	g.DELETE("/:id", s.handleCloseSession)
	g.POST("/:id/restart", s.handleRestart)
	g.POST("/:id/brief", s.handleSubmitBrief)
	g.POST("/:id/next", s.handleNext)
	g.POST("/:id/back", s.handleBack)
	g.PUT("/:id/script", s.handleEditScript)
	g.PUT("/:id/caption", s.handleEditCaption)
	g.POST("/:id/search", s.handleSearchAgain)
	g.POST("/:id/assets/toggle", s.handleToggleAsset)
	g.POST("/:id/assets/regenerate", s.handleRegenerate)
	g.POST("/:id/render/retry", s.handleRetryRender)
	g.POST("/:id/render/pick-different", s.handlePickDifferentAsset)
	g.POST("/:id/preview", s.handlePreview)
	g.POST("/:id/schedule", s.handleSchedule)
	g.POST("/:id/publish/youtube", s.handlePublishYouTube)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	o := s.newOrchestrator()
	s.addSession(o)
	c.JSON(http.StatusCreated, o.Snapshot())
}

func (s *Server) handleGetSession(c *gin.Context) {
	o, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, o.Snapshot())
}

func (s *Server) handleCloseSession(c *gin.Context) {
	o, ok := s.removeSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	o.Close()
	c.Status(http.StatusNoContent)
}

// handleRestart abandons the flow and re-keys the session under its new id.
func (s *Server) handleRestart(c *gin.Context) {
	o, ok := s.removeSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	o.Restart()
	s.addSession(o)
	c.JSON(http.StatusOK, o.Snapshot())
}

func (s *Server) handleSubmitBrief(c *gin.Context) {
	o, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var brief types.ContentBrief
	if err := c.ShouldBindJSON(&brief); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := o.SubmitBrief(c.Request.Context(), brief); err != nil {
		respondError(c, o, err)
		return
	}
	c.JSON(http.StatusOK, o.Snapshot())
}

func (s *Server) handleNext(c *gin.Context) {
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.Next(c.Request.Context())
	})
}

func (s *Server) handleBack(c *gin.Context) {
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.Back()
	})
}

type editRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleEditScript(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.EditScript(req.Text)
	})
}

func (s *Server) handleEditCaption(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.EditCaption(req.Text)
	})
}

func (s *Server) handleSearchAgain(c *gin.Context) {
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.SearchAgain(c.Request.Context())
	})
}

type toggleAssetRequest struct {
	AssetID  string `json:"asset_id" binding:"required"`
	Selected bool   `json:"selected"`
}

func (s *Server) handleToggleAsset(c *gin.Context) {
	var req toggleAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.ToggleAsset(req.AssetID, req.Selected)
	})
}

type regenerateRequest struct {
	AssetID string `json:"asset_id" binding:"required"`
}

func (s *Server) handleRegenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.Regenerate(c.Request.Context(), req.AssetID)
	})
}

func (s *Server) handleRetryRender(c *gin.Context) {
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.RetryRender(c.Request.Context())
	})
}

func (s *Server) handlePickDifferentAsset(c *gin.Context) {
	s.sessionAction(c, func(o *wizard.Orchestrator) error {
		return o.PickDifferentAsset()
	})
}

func (s *Server) handlePreview(c *gin.Context) {
	o, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	url, err := o.RenderPreview(c.Request.Context())
	if err != nil {
		respondError(c, o, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview_url": url})
}

type scheduleRequest struct {
	ScheduledTime *time.Time `json:"scheduled_time"`
}

func (s *Server) handleSchedule(c *gin.Context) {
	var req scheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	o, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err := o.Schedule(c.Request.Context(), req.ScheduledTime); err != nil {
		respondError(c, o, err)
		return
	}

	snap := o.Snapshot()
	if s.archiver != nil {
		// Archiving is best-effort and must not delay the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if key, err := s.archiver.ArchivePost(ctx, snap); err != nil {
				log.Printf("❌ Failed to archive post %s: %v", snap.SessionID, err)
			} else {
				log.Printf("✅ Archived post %s as %s", snap.SessionID, key)
			}
		}()
	}
	c.JSON(http.StatusOK, snap)
}

// sessionAction runs one orchestrator call and responds with the refreshed
// snapshot.
func (s *Server) sessionAction(c *gin.Context, action func(*wizard.Orchestrator) error) {
	o, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err := action(o); err != nil {
		respondError(c, o, err)
		return
	}
	c.JSON(http.StatusOK, o.Snapshot())
}

// respondError maps orchestrator failures onto HTTP statuses. The snapshot
// rides along so clients can render the session's own user-facing error.
func respondError(c *gin.Context, o *wizard.Orchestrator, err error) {
	status := http.StatusInternalServerError

	var wrongStep *wizard.WrongStepError
	var countErr *wizard.SelectionCountError
	var collab *client.CollaboratorError
	switch {
	case errors.Is(err, types.ErrEmptyTopic) || errors.Is(err, types.ErrNoPlatforms):
		status = http.StatusBadRequest
	case errors.As(err, &wrongStep) || errors.As(err, &countErr):
		status = http.StatusConflict
	case errors.Is(err, wizard.ErrNoPlan) || errors.Is(err, wizard.ErrEmptyScript) ||
		errors.Is(err, wizard.ErrRenderIncomplete) || errors.Is(err, wizard.ErrRenderInFlight) ||
		errors.Is(err, wizard.ErrNoBackStep) || errors.Is(err, wizard.ErrNotDelivered) ||
		errors.Is(err, wizard.ErrNotImageFlow):
		status = http.StatusConflict
	case errors.Is(err, wizard.ErrUnknownAsset):
		status = http.StatusNotFound
	case errors.As(err, &collab):
		if collab.Kind == client.KindValidation {
			status = http.StatusBadRequest
		} else {
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, gin.H{
		"error":   err.Error(),
		"session": o.Snapshot(),
	})
}
