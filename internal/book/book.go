// Package book caches minimax decisions so repeated sessions with the same
// feedback history skip the full-space search.
package book

import (
	"context"
	"sync"

	"example.com/mastermind/internal/mastermind"
)

var (
	_ mastermind.Book = (*Memory)(nil)
	_ mastermind.Book = (*Redis)(nil)
)

// Memory is a process-local book. It is safe for concurrent sessions.
type Memory struct {
	mu sync.RWMutex
	m  map[string]int
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]int)}
}

func (b *Memory) Lookup(_ context.Context, key string) (int, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	index, ok := b.m[key]
	return index, ok, nil
}

func (b *Memory) Store(_ context.Context, key string, index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[key] = index
	return nil
}

func (b *Memory) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.m)
}
