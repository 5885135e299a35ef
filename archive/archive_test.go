package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

type fakeStore struct {
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[bucket+"/"+key] = data
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, ok := f.objects[bucket+"/"+key]
	return ok, nil
}

func deliveredSnapshot(mediaURL string) types.SessionSnapshot {
	return types.SessionSnapshot{
		SessionID:   "sess-1",
		Step:        types.StepDeliver,
		Script:      "a script",
		Caption:     "a caption",
		SelectedIDs: []string{"https://cdn.example.com/a.mp4"},
		MediaURL:    mediaURL,
		Receipt:     &types.ScheduleReceipt{ProviderID: "p-1", Status: "scheduled"},
	}
}

func TestArchivePostUploadsManifestAndMedia(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake mp4 bytes"))
	}))
	defer media.Close()

	store := newFakeStore()
	a := NewArchiver(store, "content-archive", "agency/")

	key, err := a.ArchivePost(context.Background(), deliveredSnapshot(media.URL))
	if err != nil {
		t.Fatalf("archive post: %v", err)
	}
	if key != "agency/posts/sess-1.mp4" {
		t.Fatalf("unexpected media key %q", key)
	}
	if string(store.objects["content-archive/"+key]) != "fake mp4 bytes" {
		t.Fatal("media bytes not uploaded")
	}

	var record manifest
	if err := json.Unmarshal(store.objects["content-archive/agency/posts/sess-1.json"], &record); err != nil {
		t.Fatalf("manifest not uploaded or corrupt: %v", err)
	}
	if record.SessionID != "sess-1" || record.Caption != "a caption" {
		t.Fatalf("unexpected manifest %+v", record)
	}
	if record.ArchivedAt.IsZero() {
		t.Fatal("manifest missing archive timestamp")
	}
}

func TestArchivePostIsIdempotent(t *testing.T) {
	calls := 0
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("bytes"))
	}))
	defer media.Close()

	store := newFakeStore()
	a := NewArchiver(store, "content-archive", "")

	if _, err := a.ArchivePost(context.Background(), deliveredSnapshot(media.URL)); err != nil {
		t.Fatalf("first archive: %v", err)
	}
	if _, err := a.ArchivePost(context.Background(), deliveredSnapshot(media.URL)); err != nil {
		t.Fatalf("second archive: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected media fetched once, got %d", calls)
	}
}

func TestArchivePostRequiresMedia(t *testing.T) {
	a := NewArchiver(newFakeStore(), "content-archive", "")
	snap := deliveredSnapshot("")
	if _, err := a.ArchivePost(context.Background(), snap); err == nil {
		t.Fatal("expected rejection of session without media")
	}
}

func TestArchivePostSurfacesDeadMediaURL(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer dead.Close()

	a := NewArchiver(newFakeStore(), "content-archive", "")
	_, err := a.ArchivePost(context.Background(), deliveredSnapshot(dead.URL))
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected media fetch failure, got %v", err)
	}
}
