package wizard

import (
	"context"
	"strings"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// searchOutcome is the result of one pass through the search chain. Prompts
// maps each returned asset id to the shot description presumed to have
// produced it, by positional correspondence with the shot plan.
type searchOutcome struct {
	results      []types.AssetResult
	prompts      map[string]string
	usedFallback bool
}

// searchChain runs the two-tier asset search: contextual first, then a
// keyword search derived from the shot plan if the contextual tier fails.
type searchChain struct {
	searcher      AssetSearcher
	maxResults    int
	keywordTokens int
}

func (c searchChain) run(ctx context.Context, query ContextualQuery) (*searchOutcome, error) {
	if query.MaxResults == 0 {
		query.MaxResults = c.maxResults
	}

	results, err := c.searcher.SearchContextual(ctx, query)
	if err == nil {
		return &searchOutcome{
			results: results,
			prompts: promptMap(results, query.ShotPlan),
		}, nil
	}

	keywords := fallbackKeywords(query.ShotPlan, c.keywordTokens)
	if keywords == "" {
		// Nothing to fall back on; surface the contextual failure.
		return nil, err
	}

	results, fallbackErr := c.searcher.Search(ctx, keywords, query.MaxResults)
	if fallbackErr != nil {
		return nil, fallbackErr
	}

	return &searchOutcome{
		results:      results,
		prompts:      promptMap(results, query.ShotPlan),
		usedFallback: true,
	}, nil
}

// fallbackKeywords derives a keyword query from the shot plan: all shot
// descriptions concatenated, whitespace-split, first n tokens joined by
// single spaces. Returns "" when the plan has no usable text.
func fallbackKeywords(shotPlan []types.ShotInstruction, n int) string {
	var descriptions []string
	for _, shot := range shotPlan {
		descriptions = append(descriptions, shot.Description)
	}
	tokens := strings.Fields(strings.Join(descriptions, " "))
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}

// promptMap pairs result ids with shot descriptions by position, truncated to
// the number of results returned. Regeneration looks prompts up here.
func promptMap(results []types.AssetResult, shotPlan []types.ShotInstruction) map[string]string {
	prompts := make(map[string]string)
	for i, asset := range results {
		if i >= len(shotPlan) {
			break
		}
		prompts[asset.ID] = shotPlan[i].Description
	}
	return prompts
}
