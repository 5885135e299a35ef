package topics

import (
	"fmt"
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
)

const (
	workerCount      = 5
	extractorTimeout = 30 * time.Second
)

// Suggestion is one auto-mode topic candidate sourced from an industry feed.
type Suggestion struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Published time.Time `json:"published,omitempty"`
	// Excerpt is readable article text for grounding the brief, bounded by
	// config.TopicExcerptLength.
	Excerpt string `json:"excerpt,omitempty"`
}

// Suggester turns RSS/Atom feeds into topic suggestions for auto-mode briefs.
type Suggester struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewSuggester creates a suggester over the given feed URLs.
func NewSuggester(feeds []string) *Suggester {
	return &Suggester{feeds: feeds, parser: gofeed.NewParser()}
}

// Suggest fetches every configured feed and returns up to max suggestions,
// newest first, with readable excerpts extracted concurrently. Feeds that fail
// are logged and skipped; an error is returned only when nothing was fetched.
func (s *Suggester) Suggest(max int) ([]*Suggestion, error) {
	if max <= 0 {
		max = config.MaxSuggestedTopics
	}

	var suggestions []*Suggestion
	var fetchErr error
	for _, feedURL := range s.feeds {
		items, err := s.fetchFeed(feedURL, max)
		if err != nil {
			log.Printf("skipping feed %s: %v", feedURL, err)
			fetchErr = err
			continue
		}
		suggestions = append(suggestions, items...)
	}
	if len(suggestions) == 0 {
		if fetchErr != nil {
			return nil, fmt.Errorf("no topic suggestions available: %w", fetchErr)
		}
		return nil, nil
	}

	sortByPublished(suggestions)
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}

	extractExcerpts(suggestions)
	return suggestions, nil
}

func (s *Suggester) fetchFeed(feedURL string, maxCount int) ([]*Suggestion, error) {
	feed, err := s.parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if count > maxCount {
		count = maxCount
	}

	suggestions := make([]*Suggestion, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		suggestions = append(suggestions, &Suggestion{
			Title:     item.Title,
			URL:       item.Link,
			Source:    feed.Title,
			Published: published,
		})
	}
	return suggestions, nil
}

func sortByPublished(suggestions []*Suggestion) {
	for i := 1; i < len(suggestions); i++ {
		for j := i; j > 0 && suggestions[j].Published.After(suggestions[j-1].Published); j-- {
			suggestions[j], suggestions[j-1] = suggestions[j-1], suggestions[j]
		}
	}
}

// extractExcerpts pulls readable article text for each suggestion using a
// worker pool. Extraction failures leave the excerpt empty; the suggestion is
// still usable from its title alone.
func extractExcerpts(suggestions []*Suggestion) {
	var wg sync.WaitGroup
	suggestionChan := make(chan *Suggestion, len(suggestions))

	for i := 0; i < workerCount; i++ {
		go func(workerID int) {
			for suggestion := range suggestionChan {
				if err := extractExcerpt(suggestion); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, suggestion.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, suggestion := range suggestions {
		wg.Add(1)
		suggestionChan <- suggestion
	}

	wg.Wait()
	close(suggestionChan)
}

func extractExcerpt(suggestion *Suggestion) error {
	if suggestion.URL == "" {
		return fmt.Errorf("suggestion URL is empty")
	}

	article, err := readability.FromURL(suggestion.URL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	suggestion.Excerpt = truncate(article.TextContent, config.TopicExcerptLength)
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
