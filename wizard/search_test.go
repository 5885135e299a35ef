package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

func TestFallbackKeywordsTakesFirstFiveTokens(t *testing.T) {
	shotPlan := []types.ShotInstruction{
		{Description: "morning light  over the", DurationSeconds: 5},
		{Description: "city skyline at dawn", DurationSeconds: 5},
	}

	got := fallbackKeywords(shotPlan, 5)
	want := "morning light over the city"
	if got != want {
		t.Fatalf("expected keywords %q, got %q", want, got)
	}
}

func TestFallbackKeywordsEmptyPlan(t *testing.T) {
	if got := fallbackKeywords(nil, 5); got != "" {
		t.Fatalf("expected empty keywords for nil plan, got %q", got)
	}
	whitespaceOnly := []types.ShotInstruction{{Description: "   "}, {Description: "\t"}}
	if got := fallbackKeywords(whitespaceOnly, 5); got != "" {
		t.Fatalf("expected empty keywords for whitespace plan, got %q", got)
	}
}

func TestSearchChainFallsBackOnContextualFailure(t *testing.T) {
	searcher := &fakeSearcher{
		contextualErr: errors.New("contextual search unavailable"),
		keywordResults: []types.AssetResult{
			{ID: "https://cdn.example.com/a.mp4"},
		},
	}
	chain := searchChain{searcher: searcher, maxResults: 12, keywordTokens: 5}

	query := ContextualQuery{
		ShotPlan: []types.ShotInstruction{
			{Description: "morning light", DurationSeconds: 5},
			{Description: "stretching", DurationSeconds: 5},
		},
	}
	outcome, err := chain.run(context.Background(), query)
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if !outcome.usedFallback {
		t.Fatal("expected outcome to record fallback use")
	}
	if searcher.lastKeywordQuery != "morning light stretching" {
		t.Fatalf("expected fallback query %q, got %q", "morning light stretching", searcher.lastKeywordQuery)
	}
	if searcher.keywordCalls != 1 {
		t.Fatalf("expected exactly one keyword search, got %d", searcher.keywordCalls)
	}
}

func TestSearchChainNoFallbackWithoutShotText(t *testing.T) {
	contextualErr := errors.New("contextual search unavailable")
	searcher := &fakeSearcher{contextualErr: contextualErr}
	chain := searchChain{searcher: searcher, maxResults: 12, keywordTokens: 5}

	_, err := chain.run(context.Background(), ContextualQuery{})
	if !errors.Is(err, contextualErr) {
		t.Fatalf("expected original contextual error, got %v", err)
	}
	if searcher.keywordCalls != 0 {
		t.Fatalf("expected no fallback call, got %d", searcher.keywordCalls)
	}
}

func TestPromptMapPositionalTruncation(t *testing.T) {
	results := []types.AssetResult{{ID: "one"}, {ID: "two"}}
	shotPlan := []types.ShotInstruction{
		{Description: "first shot"},
		{Description: "second shot"},
		{Description: "third shot"},
	}

	prompts := promptMap(results, shotPlan)
	if len(prompts) != 2 {
		t.Fatalf("expected prompt map truncated to results, got %d entries", len(prompts))
	}
	if prompts["one"] != "first shot" || prompts["two"] != "second shot" {
		t.Fatalf("unexpected prompt mapping: %v", prompts)
	}

	// More results than shots: trailing results carry no prompt.
	extra := append(results, types.AssetResult{ID: "three"})
	prompts = promptMap(extra, shotPlan[:2])
	if _, ok := prompts["three"]; ok {
		t.Fatal("expected result past shot plan end to carry no prompt")
	}
}
