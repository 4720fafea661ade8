package chat

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultBindingCapacity = 1024

// Bindings remembers which memory session a transport conversation
// (a Telegram chat, a CLI user) is currently attached to. Stale entries
// are harmless: the orchestrator starts a fresh session for ids that
// have left memory.
type Bindings struct {
	cache *lru.Cache[string, string]
}

func NewBindings(capacity int) (*Bindings, error) {
	if capacity <= 0 {
		capacity = defaultBindingCapacity
	}
	cache, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Bindings{cache: cache}, nil
}

// Get returns the bound session id or "" when the conversation has none.
func (b *Bindings) Get(key string) string {
	sid, _ := b.cache.Get(key)
	return sid
}

func (b *Bindings) Set(key, sessionID string) {
	b.cache.Add(key, sessionID)
}

// Reset unbinds the conversation and returns the session it was attached to.
func (b *Bindings) Reset(key string) (string, bool) {
	sid, ok := b.cache.Peek(key)
	if !ok {
		return "", false
	}
	b.cache.Remove(key)
	return sid, true
}
