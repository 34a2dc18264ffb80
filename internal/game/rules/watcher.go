package rules

import (
	"sort"
	"sync"
)

// WatcherScope defines the scope of a watcher's tracking.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopePlayer tracks events for a single player.
	WatcherScopePlayer
)

func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopePlayer:
		return "PLAYER"
	default:
		return "UNKNOWN"
	}
}

// Watcher accumulates statistics from the event log.
type Watcher interface {
	// Watch is called for every event; watchers filter internally.
	Watch(event Event)

	// Reset clears accumulated state.
	Reset()

	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	GetKey() string
}

// BaseWatcher carries the bookkeeping shared by all watchers.
type BaseWatcher struct {
	scope    WatcherScope
	playerID string
	key      string
}

// NewBaseWatcher creates a new base watcher with the specified scope.
func NewBaseWatcher(scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{scope: scope}
}

func (bw *BaseWatcher) GetScope() WatcherScope { return bw.scope }

func (bw *BaseWatcher) SetPlayerID(id string) { bw.playerID = id }

func (bw *BaseWatcher) GetPlayerID() string { return bw.playerID }

func (bw *BaseWatcher) Reset() {}

func (bw *BaseWatcher) GetKey() string { return bw.key }

func (bw *BaseWatcher) SetKey(key string) { bw.key = key }

// WatcherRegistry fans events out to registered watchers.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{watchers: make(map[string]Watcher)}
}

// AddWatcher adds a watcher, replacing any with the same key. Player-scoped
// watchers are keyed by player id and key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.watchers[registryKey(watcher)] = watcher
}

func registryKey(watcher Watcher) string {
	key := watcher.GetKey()
	if watcher.GetScope() == WatcherScopePlayer {
		if getter, ok := watcher.(interface{ GetPlayerID() string }); ok && getter.GetPlayerID() != "" {
			return getter.GetPlayerID() + "_" + key
		}
	}
	return key
}

// GetWatcher retrieves a watcher by registry key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// GetAllWatchers returns all registered watchers ordered by key.
func (wr *WatcherRegistry) GetAllWatchers() []Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	keys := make([]string, 0, len(wr.watchers))
	for k := range wr.watchers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]Watcher, 0, len(keys))
	for _, k := range keys {
		result = append(result, wr.watchers[k])
	}
	return result
}

// ResetWatchers resets every watcher.
func (wr *WatcherRegistry) ResetWatchers() {
	for _, watcher := range wr.GetAllWatchers() {
		watcher.Reset()
	}
}

// NotifyWatchers delivers event to all watchers in key order.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	for _, watcher := range wr.GetAllWatchers() {
		watcher.Watch(event)
	}
}
