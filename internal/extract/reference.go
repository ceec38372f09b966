package extract

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/JSmilg/veracity/internal/model"
	"go.uber.org/zap"
)

// ReferenceLoader supplies the known-players table
type ReferenceLoader interface {
	ListReferencePlayers(ctx context.Context) ([]model.ReferencePlayer, error)
}

// ReferenceIndex is a lazily built lookup over the reference players.
// Manager records are never indexed. A failed load leaves the index empty
// and extraction falls back to patterns only.
type ReferenceIndex struct {
	loader ReferenceLoader
	logger *zap.Logger

	mu     sync.RWMutex
	loaded bool
	byName map[string]model.ReferencePlayer // lower-cased full name
	byLast map[string][]string              // lower-cased last name -> full names
}

// NewReferenceIndex creates an index that loads from loader on first use.
// A nil loader yields an always-empty index.
func NewReferenceIndex(loader ReferenceLoader, logger *zap.Logger) *ReferenceIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceIndex{loader: loader, logger: logger}
}

// Reset drops the built index so the next lookup reloads it
func (r *ReferenceIndex) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.byName = nil
	r.byLast = nil
}

func (r *ReferenceIndex) ensure(ctx context.Context) {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return
	}

	r.byName = make(map[string]model.ReferencePlayer)
	r.byLast = make(map[string][]string)
	r.loaded = true

	if r.loader == nil {
		return
	}
	players, err := r.loader.ListReferencePlayers(ctx)
	if err != nil {
		r.logger.Warn("reference players unavailable, using pattern extraction only", zap.Error(err))
		return
	}

	for _, p := range players {
		if p.IsManager || strings.TrimSpace(p.Name) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := r.byName[key]; dup {
			continue
		}
		r.byName[key] = p
		parts := strings.Fields(key)
		last := parts[len(parts)-1]
		r.byLast[last] = append(r.byLast[last], p.Name)
	}
	r.logger.Debug("reference index built", zap.Int("players", len(r.byName)))
}

// Size returns the number of indexed players
func (r *ReferenceIndex) Size(ctx context.Context) int {
	r.ensure(ctx)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Resolve looks a name up case-insensitively
func (r *ReferenceIndex) Resolve(ctx context.Context, name string) (model.ReferencePlayer, bool) {
	r.ensure(ctx)
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

var capitalisedToken = regexp.MustCompile(`\p{Lu}[\p{L}'’-]+`)

// FindInText scans capitalised tokens, looks each up by last name and
// accepts any indexed full name that appears verbatim in text
func (r *ReferenceIndex) FindInText(ctx context.Context, text string) []string {
	r.ensure(ctx)
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.byLast) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string
	for _, tok := range capitalisedToken.FindAllString(text, -1) {
		tok = strings.TrimRight(strings.ToLower(tok), "'’-")
		tok = strings.TrimSuffix(strings.TrimSuffix(tok, "'s"), "’s")
		for _, full := range r.byLast[tok] {
			if seen[full] {
				continue
			}
			if strings.Contains(lower, strings.ToLower(full)) {
				seen[full] = true
				found = append(found, full)
			}
		}
	}
	return found
}
