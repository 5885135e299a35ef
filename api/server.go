package api

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/BethCNC/dad-social-media-agent-sub000/publish"
	"github.com/BethCNC/dad-social-media-agent-sub000/scheduler"
	"github.com/BethCNC/dad-social-media-agent-sub000/topics"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// OrchestratorFactory builds a fresh wizard orchestrator per session.
type OrchestratorFactory func() *wizard.Orchestrator

// PostArchiver keeps a durable copy of delivered posts.
type PostArchiver interface {
	ArchivePost(ctx context.Context, snap types.SessionSnapshot) (string, error)
}

// ShortsUploader publishes a rendered video file to YouTube Shorts.
type ShortsUploader interface {
	UploadShort(videoPath string, metadata publish.Metadata) (string, error)
}

// Server exposes the wizard over HTTP. Each consumer session gets its own
// orchestrator; the server only routes requests to the right one.
type Server struct {
	newOrchestrator OrchestratorFactory
	suggester       *topics.Suggester
	queue           *scheduler.Queue
	archiver        PostArchiver
	uploader        ShortsUploader

	mu       sync.Mutex
	sessions map[string]*wizard.Orchestrator
}

// NewServer creates the API server. suggester, queue, archiver, and uploader
// may be nil when those features are not configured; their routes then report
// unavailability.
func NewServer(factory OrchestratorFactory, suggester *topics.Suggester, queue *scheduler.Queue, archiver PostArchiver, uploader ShortsUploader) *Server {
	return &Server{
		newOrchestrator: factory,
		suggester:       suggester,
		queue:           queue,
		archiver:        archiver,
		uploader:        uploader,
		sessions:        make(map[string]*wizard.Orchestrator),
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.registerSessionRoutes(r)
	s.registerTopicRoutes(r)
	s.registerQueueRoutes(r)
	registerHealthRoutes(r)
	return r
}

func registerHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
}

// session looks up the orchestrator for an id.
func (s *Server) session(id string) (*wizard.Orchestrator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.sessions[id]
	return o, ok
}

func (s *Server) addSession(o *wizard.Orchestrator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[o.SessionID()] = o
}

func (s *Server) removeSession(id string) (*wizard.Orchestrator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return o, ok
}
