package publish

import (
	"reflect"
	"strings"
	"testing"
)

func TestMetadataFromCaption(t *testing.T) {
	meta := MetadataFromCaption("3 energy tips you need\nTry these today\n#energy #morning", "fallback topic")
	if meta.Title != "3 energy tips you need" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if !reflect.DeepEqual(meta.Tags, []string{"energy", "morning"}) {
		t.Fatalf("unexpected tags %v", meta.Tags)
	}
	if !strings.Contains(meta.Description, "#shorts") {
		t.Fatal("description missing #shorts tag")
	}
}

func TestMetadataFromCaptionFallsBackToTopic(t *testing.T) {
	meta := MetadataFromCaption("", "3 energy tips")
	if meta.Title != "3 energy tips" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
}

func TestMetadataTitleIsTruncated(t *testing.T) {
	long := strings.Repeat("word ", 40)
	meta := MetadataFromCaption(long, "")
	if len(meta.Title) > 100 {
		t.Fatalf("title not truncated: %d chars", len(meta.Title))
	}
	if !strings.HasSuffix(meta.Title, "...") {
		t.Fatalf("truncated title missing ellipsis: %q", meta.Title)
	}
}
