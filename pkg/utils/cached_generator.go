package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	mem "rihla/pkg/memcache"
)

// CachedGenerator answers repeated prompts from a CompletionStore.
// Cache errors are logged and never fail the call.
type CachedGenerator struct {
	next  TextGenerator
	store mem.CompletionStore
	ttl   time.Duration
}

func NewCachedGenerator(next TextGenerator, store mem.CompletionStore, ttl time.Duration) *CachedGenerator {
	return &CachedGenerator{next: next, store: store, ttl: ttl}
}

func (g *CachedGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	key := CompletionKey(prompt)

	if cached, ok, err := g.store.Get(ctx, key); err != nil {
		log.Printf("completion cache: get failed: %v", err)
	} else if ok {
		log.Printf("completion cache: hit %s", key[:12])
		return cached, nil
	}

	reply, err := g.next.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := g.store.Set(ctx, key, reply, g.ttl); err != nil {
		log.Printf("completion cache: set failed: %v", err)
	}
	return reply, nil
}

func (g *CachedGenerator) Close() error {
	return CloseGenerator(g.next)
}

// CompletionKey is the hex sha256 of prompt.
func CompletionKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
