package session

import (
	"fmt"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// #region types
// EvictFunc is called when a session is dropped to make room.
type EvictFunc func(id string, g *game.Game)

// Registry holds live games keyed by session ID. Each entry owns its own
// predictor. The cache is internally locked, but a single Game must still be
// driven by one goroutine at a time.
type Registry struct {
	cache  *lru.Cache[string, *game.Game]
	config predictor.Config
	rules  move.Rules
}

// #endregion types

// #region constructor
// NewRegistry creates a registry holding at most size sessions. config is
// validated up front so Open cannot fail on configuration later.
func NewRegistry(size int, config predictor.Config, rules move.Rules, onEvict EvictFunc) (*Registry, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !rules.Valid() {
		return nil, move.ErrInvalidRules
	}
	var cb func(string, *game.Game)
	if onEvict != nil {
		cb = func(id string, g *game.Game) { onEvict(id, g) }
	}
	cache, err := lru.NewWithEvict[string, *game.Game](size, cb)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &Registry{cache: cache, config: config, rules: rules}, nil
}

// #endregion constructor

// #region operations
// Open starts a new session. An empty id is replaced with a fresh UUID.
func (r *Registry) Open(id string, src predictor.Source) (string, *game.Game, error) {
	if id == "" {
		id = uuid.New().String()
	}
	if r.cache.Contains(id) {
		return "", nil, fmt.Errorf("session %s already open", id)
	}
	g, err := game.New(r.config, r.rules, src)
	if err != nil {
		return "", nil, err
	}
	r.cache.Add(id, g)
	return id, g, nil
}

// Get returns a live session and marks it recently used.
func (r *Registry) Get(id string) (*game.Game, bool) {
	return r.cache.Get(id)
}

// Close drops a session. The eviction callback fires for it too.
func (r *Registry) Close(id string) bool {
	return r.cache.Remove(id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// IDs returns live session IDs, oldest first.
func (r *Registry) IDs() []string {
	return r.cache.Keys()
}

// #endregion operations
