package topics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Wellness Weekly</title>
%s
</channel>
</rss>`

func feedItem(title, link, pubDate string) string {
	return fmt.Sprintf("<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>", title, link, pubDate)
}

func TestSuggestOrdersNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := feedItem("Older story", "", "Mon, 02 Jan 2023 10:00:00 GMT") +
			feedItem("Newer story", "", "Mon, 09 Jan 2023 10:00:00 GMT")
		fmt.Fprintf(w, feedTemplate, items)
	}))
	defer srv.Close()

	s := NewSuggester([]string{srv.URL})
	suggestions, err := s.Suggest(5)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Title != "Newer story" {
		t.Fatalf("expected newest first, got %q", suggestions[0].Title)
	}
	if suggestions[0].Source != "Wellness Weekly" {
		t.Fatalf("unexpected source %q", suggestions[0].Source)
	}
}

func TestSuggestCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var items string
		for i := 0; i < 8; i++ {
			when := time.Date(2023, 1, i+1, 0, 0, 0, 0, time.UTC).Format(time.RFC1123)
			items += feedItem(fmt.Sprintf("story %d", i), "", when)
		}
		fmt.Fprintf(w, feedTemplate, items)
	}))
	defer srv.Close()

	suggestions, err := NewSuggester([]string{srv.URL}).Suggest(3)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(suggestions))
	}
}

func TestSuggestSkipsDeadFeeds(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, feedTemplate, feedItem("only story", "", "Mon, 02 Jan 2023 10:00:00 GMT"))
	}))
	defer good.Close()
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer dead.Close()

	suggestions, err := NewSuggester([]string{dead.URL, good.URL}).Suggest(5)
	if err != nil {
		t.Fatalf("suggest with one dead feed: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Title != "only story" {
		t.Fatalf("unexpected suggestions %v", suggestions)
	}
}

func TestSuggestAllFeedsDead(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer dead.Close()

	if _, err := NewSuggester([]string{dead.URL}).Suggest(5); err == nil {
		t.Fatal("expected error when every feed fails")
	}
}

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	if got := truncate("héllo wörld", 5); got != "héllo" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("short", 400); got != "short" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
