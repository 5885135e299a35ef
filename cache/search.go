package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BethCNC/dad-social-media-agent-sub000/config"
	"github.com/BethCNC/dad-social-media-agent-sub000/types"
	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// SearchCache is a read-through Redis cache in front of an AssetSearcher.
// Cache failures are logged and degrade to the underlying searcher; they never
// fail a search. Image regeneration is intentionally not cached, a regenerated
// asset must always be fresh.
type SearchCache struct {
	next   wizard.AssetSearcher
	client *redis.Client
	ttl    time.Duration
}

// New wraps next with a Redis cache. A zero ttl uses the configured default.
func New(next wizard.AssetSearcher, addr string, ttl time.Duration) (*SearchCache, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	if ttl <= 0 {
		ttl = config.SearchCacheTTL
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &SearchCache{next: next, client: client, ttl: ttl}, nil
}

// SearchContextual serves cached results for an identical query when present,
// falling through to the underlying searcher otherwise.
func (c *SearchCache) SearchContextual(ctx context.Context, query wizard.ContextualQuery) ([]types.AssetResult, error) {
	key := contextualKey(query)
	if cached, ok := c.get(ctx, key); ok {
		return cached, nil
	}

	results, err := c.next.SearchContextual(ctx, query)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, results)
	return results, nil
}

// Search is the cached keyword search.
func (c *SearchCache) Search(ctx context.Context, query string, maxResults int) ([]types.AssetResult, error) {
	key := keywordKey(query, maxResults)
	if cached, ok := c.get(ctx, key); ok {
		return cached, nil
	}

	results, err := c.next.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, results)
	return results, nil
}

// RegenerateImage always goes to the underlying searcher.
func (c *SearchCache) RegenerateImage(ctx context.Context, prompt string) (*types.AssetResult, error) {
	return c.next.RegenerateImage(ctx, prompt)
}

func (c *SearchCache) get(ctx context.Context, key string) ([]types.AssetResult, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("search cache read failed for %s: %v", key, err)
		return nil, false
	}

	var results []types.AssetResult
	if err := json.Unmarshal(data, &results); err != nil {
		log.Printf("search cache entry %s is corrupt: %v", key, err)
		return nil, false
	}
	return results, true
}

func (c *SearchCache) put(ctx context.Context, key string, results []types.AssetResult) {
	data, err := json.Marshal(results)
	if err != nil {
		log.Printf("search cache marshal failed for %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("search cache write failed for %s: %v", key, err)
	}
}

// contextualKey hashes every field that changes the result set. Editing the
// script or switching visual style must never serve stale assets.
func contextualKey(query wizard.ContextualQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%d|%s|",
		query.Topic, query.Hook, query.Script, query.ContentPillar,
		strings.Join(query.Keywords, ","), query.MaxResults, query.VisualStyle)
	for _, shot := range query.ShotPlan {
		fmt.Fprintf(&b, "%s:%d;", shot.Description, shot.DurationSeconds)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "assets:contextual:" + hex.EncodeToString(sum[:])
}

func keywordKey(query string, maxResults int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, maxResults)))
	return "assets:keyword:" + hex.EncodeToString(sum[:])
}
