package api

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/BethCNC/dad-social-media-agent-sub000/publish"
)

// handlePublishYouTube uploads the session's delivered render as a YouTube
// Short. It sits outside the wizard flow: the session must already hold a
// finished render, and publishing does not advance or mutate the session.
func (s *Server) handlePublishYouTube(c *gin.Context) {
	if s.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "YouTube upload not configured"})
		return
	}

	o, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	snap := o.Snapshot()
	if snap.MediaURL == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "session has no rendered media to publish"})
		return
	}

	path, cleanup, err := downloadToTemp(snap.MediaURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("fetch rendered media: %v", err)})
		return
	}
	defer cleanup()

	topic := ""
	if snap.Brief != nil {
		topic = snap.Brief.Topic
	}
	metadata := publish.MetadataFromCaption(snap.Caption, topic)

	videoID, err := s.uploader.UploadShort(path, metadata)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"video_id": videoID,
		"url":      "https://youtube.com/shorts/" + videoID,
	})
}

// downloadToTemp fetches the media to a temp file the YouTube client can
// stream from. The caller must invoke cleanup.
func downloadToTemp(mediaURL string) (string, func(), error) {
	resp, err := http.Get(mediaURL)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	file, err := os.CreateTemp("", "short-*.mp4")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(file.Name()) }

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		cleanup()
		return "", nil, err
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return file.Name(), cleanup, nil
}
