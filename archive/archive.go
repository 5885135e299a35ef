package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// Archiver keeps a durable record of every delivered post: the rendered media
// file and a JSON manifest of the session that produced it.
type Archiver struct {
	store  objectStore
	bucket string
	prefix string
}

// NewArchiver creates an archiver over the given store. A trailing slash is
// normalized onto the prefix.
func NewArchiver(store objectStore, bucket, prefix string) *Archiver {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Archiver{store: store, bucket: bucket, prefix: prefix}
}

// manifest is the archived record of one delivered post.
type manifest struct {
	SessionID  string                 `json:"session_id"`
	Brief      *types.ContentBrief    `json:"brief,omitempty"`
	Script     string                 `json:"script"`
	Caption    string                 `json:"caption"`
	AssetIDs   []string               `json:"asset_ids"`
	MediaURL   string                 `json:"media_url"`
	Receipt    *types.ScheduleReceipt `json:"receipt,omitempty"`
	ArchivedAt time.Time              `json:"archived_at"`
}

// ArchivePost uploads the session manifest and the rendered media. It returns
// the media object key. Archiving the same session twice is a no-op.
func (a *Archiver) ArchivePost(ctx context.Context, snap types.SessionSnapshot) (string, error) {
	if snap.MediaURL == "" {
		return "", fmt.Errorf("session %s has no rendered media to archive", snap.SessionID)
	}

	mediaKey := a.mediaKey(snap.SessionID)
	exists, err := a.store.Exists(ctx, a.bucket, mediaKey)
	if err != nil {
		return "", fmt.Errorf("check archived media: %w", err)
	}
	if exists {
		return mediaKey, nil
	}

	record := manifest{
		SessionID:  snap.SessionID,
		Brief:      snap.Brief,
		Script:     snap.Script,
		Caption:    snap.Caption,
		AssetIDs:   snap.SelectedIDs,
		MediaURL:   snap.MediaURL,
		Receipt:    snap.Receipt,
		ArchivedAt: time.Now().UTC(),
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	manifestKey := a.manifestKey(snap.SessionID)
	if err := a.store.Put(ctx, a.bucket, manifestKey, bytes.NewReader(payload), "application/json"); err != nil {
		return "", fmt.Errorf("upload manifest: %w", err)
	}

	resp, err := http.Get(snap.MediaURL)
	if err != nil {
		return "", fmt.Errorf("fetch rendered media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch rendered media: status %d", resp.StatusCode)
	}

	if err := a.store.Put(ctx, a.bucket, mediaKey, resp.Body, "video/mp4"); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return mediaKey, nil
}

func (a *Archiver) mediaKey(sessionID string) string {
	return a.prefix + "posts/" + sessionID + ".mp4"
}

func (a *Archiver) manifestKey(sessionID string) string {
	return a.prefix + "posts/" + sessionID + ".json"
}
