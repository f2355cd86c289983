package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/logging"
)

const (
	FallbackTakeaway     = "Could not generate takeaway. Please write manually."
	EmptyTakeaway        = "No takeaway generated."
	FallbackDeepDiveText = "Search grounding failed. Please try again later."
	EmptyDeepDiveText    = "No deep dive content found."
)

// FallbackSuggestions is returned whenever suggestions cannot be produced.
func FallbackSuggestions() []string {
	return []string{"System Design Patterns", "Concurrency in Depth", "Advanced Testing"}
}

// Assistant fronts a Generator with a cache and fixed fallbacks. Calls never
// fail and are never retried. A nil generator means every call falls back.
type Assistant struct {
	gen    Generator
	cache  Cache
	ttl    time.Duration
	logger logging.Logger
}

func NewAssistant(gen Generator, cache Cache, ttl time.Duration, logger logging.Logger) *Assistant {
	if cache == nil {
		cache = NopCache{}
	}
	return &Assistant{gen: gen, cache: cache, ttl: ttl, logger: logger.With("module", "ai")}
}

func cacheKey(op string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "devlog:ai:" + op + ":" + hex.EncodeToString(sum[:])
}

// cached loads key into dst. Cache errors count as a miss.
func (a *Assistant) cached(ctx context.Context, key string, dst any) bool {
	val, err := a.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			a.logger.Warn(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		a.logger.Warn(ctx, "cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (a *Assistant) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, string(b), a.ttl); err != nil {
		a.logger.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (a *Assistant) Takeaway(ctx context.Context, content string) string {
	if a.gen == nil {
		return FallbackTakeaway
	}

	key := cacheKey("takeaway", content)
	var out string
	if a.cached(ctx, key, &out) {
		return out
	}

	out, err := a.gen.Takeaway(ctx, content)
	if err != nil {
		a.logger.Warn(ctx, "takeaway generation failed", "error", err)
		return FallbackTakeaway
	}
	if out == "" {
		return EmptyTakeaway
	}

	a.store(ctx, key, out)
	return out
}

func (a *Assistant) Suggestions(ctx context.Context, topic, category string) []string {
	if a.gen == nil {
		return FallbackSuggestions()
	}

	key := cacheKey("suggestions", topic, category)
	var out []string
	if a.cached(ctx, key, &out) {
		return out
	}

	out, err := a.gen.Suggestions(ctx, topic, category)
	if err != nil {
		a.logger.Warn(ctx, "suggestions generation failed", "error", err)
		return FallbackSuggestions()
	}

	if len(out) == 0 {
		return []string{}
	}
	a.store(ctx, key, out)
	return out
}

func (a *Assistant) DeepDive(ctx context.Context, topic string) *DeepDive {
	if a.gen == nil {
		return &DeepDive{Text: FallbackDeepDiveText, Sources: []Source{}}
	}

	key := cacheKey("deepdive", topic)
	out := &DeepDive{}
	if a.cached(ctx, key, out) {
		return out
	}

	out, err := a.gen.DeepDive(ctx, topic)
	if err != nil {
		a.logger.Warn(ctx, "deep dive failed", "error", err)
		return &DeepDive{Text: FallbackDeepDiveText, Sources: []Source{}}
	}
	if out.Sources == nil {
		out.Sources = []Source{}
	}
	if out.Text == "" {
		out.Text = EmptyDeepDiveText
		return out
	}

	a.store(ctx, key, out)
	return out
}
