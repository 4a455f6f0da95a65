// Package registry provides a global registry of level packs.
// Built-in packs register themselves in init() functions; the CLI adds
// directory packs at startup. Views look packs up by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-sokoban/internal/levels"
	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

var (
	packs = make(map[string]levels.Pack)
	mu    sync.RWMutex
)

// Register adds a pack to the registry.
// Typically called from an init() function.
// Panics if a pack with the same ID is already registered.
func Register(p levels.Pack) {
	if err := Add(p); err != nil {
		panic(err.Error())
	}
}

// Add registers a pack at runtime and reports duplicate IDs as an error.
func Add(p levels.Pack) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[p.ID()]; exists {
		return fmt.Errorf("registry: pack %q already registered", p.ID())
	}
	packs[p.ID()] = p
	return nil
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for id, p := range packs {
		result = append(result, PackInfo{ID: id, Title: p.Title()})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the pack registered under id.
func Get(id string) (levels.Pack, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := packs[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}
	return p, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[id]
	return ok
}

// Open loads the pack and builds a fresh session over its levels. Every
// call returns independent state.
func Open(id string) (*sokoban.Session, []levels.Level, error) {
	p, err := Get(id)
	if err != nil {
		return nil, nil, err
	}
	list, err := p.Levels()
	if err != nil {
		return nil, nil, fmt.Errorf("registry: load pack %q: %w", id, err)
	}
	s, err := levels.NewSession(list)
	if err != nil {
		return nil, nil, fmt.Errorf("registry: pack %q: %w", id, err)
	}
	return s, list, nil
}
