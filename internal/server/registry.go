package server

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store persists games. Implemented by repository.GameRepository.
type Store interface {
	Create(ctx context.Context, state *game.GameState) error
	Save(ctx context.Context, state *game.GameState) error
	Load(ctx context.Context, id uuid.UUID) (*game.GameState, error)
	AppendEvents(ctx context.Context, gameID uuid.UUID, events []rules.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DiceFactory returns the dice a new or reloaded game rolls with.
type DiceFactory func(gameID uuid.UUID) rules.Dice

type gameEntry struct {
	mu    sync.Mutex
	state *game.GameState
	dice  rules.Dice
}

// Registry owns live games. Actions on one game are serialized; different
// games proceed concurrently.
type Registry struct {
	mu       sync.RWMutex
	games    map[uuid.UUID]*gameEntry
	store    Store
	dice     DiceFactory
	settings game.Settings
	bus      *rules.EventBus
	recorder *game.ReplayRecorder
	logger   *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStore persists every committed action.
func WithStore(store Store) RegistryOption {
	return func(r *Registry) { r.store = store }
}

// WithDice overrides the dice used for new games.
func WithDice(factory DiceFactory) RegistryOption {
	return func(r *Registry) { r.dice = factory }
}

// WithSettings overrides the default rules settings.
func WithSettings(settings game.Settings) RegistryOption {
	return func(r *Registry) { r.settings = settings }
}

// WithEventBus publishes committed events to bus.
func WithEventBus(bus *rules.EventBus) RegistryOption {
	return func(r *Registry) { r.bus = bus }
}

// WithReplayRecorder snapshots every committed action.
func WithReplayRecorder(recorder *game.ReplayRecorder) RegistryOption {
	return func(r *Registry) { r.recorder = recorder }
}

// WithSeed makes deck shuffles and default dice reproducible.
func WithSeed(seed int64) RegistryOption {
	return func(r *Registry) { r.rng = rand.New(rand.NewSource(seed)) }
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		games:    make(map[uuid.UUID]*gameEntry),
		settings: game.DefaultSettings(),
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.dice == nil {
		r.dice = func(uuid.UUID) rules.Dice { return rules.NewRandomDice(r.nextSeed()) }
	}
	return r
}

func (r *Registry) nextSeed() int64 {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Int63()
}

// CreateGame seats players in a new waiting game.
func (r *Registry) CreateGame(ctx context.Context, seats []game.Seat) (*game.GameState, error) {
	state, err := game.NewGameState(seats, r.settings, rand.New(rand.NewSource(r.nextSeed())))
	if err != nil {
		return nil, err
	}
	if r.store != nil {
		if err := r.store.Create(ctx, state); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.games[state.Game.ID] = &gameEntry{state: state, dice: r.dice(state.Game.ID)}
	r.mu.Unlock()

	r.logger.Info("game created",
		zap.String("game_id", state.Game.ID.String()),
		zap.Int("players", len(seats)),
	)
	return state.Clone(), nil
}

// StartGame moves a waiting game into play.
func (r *Registry) StartGame(ctx context.Context, id uuid.UUID) (*game.GameState, error) {
	entry, err := r.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	work := entry.state.Clone()
	if err := work.Start(); err != nil {
		return nil, err
	}
	evt := rules.NewEvent(rules.EventGameStarted, "", "")
	evt.GameID = id.String()
	evt.TurnNumber = work.Game.TurnNumber
	if err := r.commit(ctx, entry, work, []rules.Event{evt}, "start"); err != nil {
		return nil, err
	}
	if r.recorder != nil {
		r.recorder.StartRecording(work)
	}
	r.logger.Info("game started", zap.String("game_id", id.String()))
	return work.Clone(), nil
}

// GetGame returns a copy of the current state.
func (r *Registry) GetGame(ctx context.Context, id uuid.UUID) (*game.GameState, error) {
	entry, err := r.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state.Clone(), nil
}

// ListValidActions returns the current player's legal actions.
func (r *Registry) ListValidActions(ctx context.Context, id uuid.UUID) ([]game.ValidAction, error) {
	entry, err := r.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return game.ListValidActions(entry.state.Clone())
}

// ApplyAction executes action against a working copy and commits it only
// if the engine and the store both succeed.
func (r *Registry) ApplyAction(ctx context.Context, id uuid.UUID, action game.Action) (game.ActionResult, error) {
	entry, err := r.entry(ctx, id)
	if err != nil {
		return game.ActionResult{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	work := entry.state.Clone()
	result, err := game.ApplyAction(work, entry.dice, action, r.logger)
	if err != nil {
		return game.ActionResult{}, err
	}
	if !result.Success {
		return result, nil
	}

	if err := r.commit(ctx, entry, work, result.Events, action.String()); err != nil {
		return game.ActionResult{}, err
	}
	if result.GameOver {
		r.logger.Info("game over",
			zap.String("game_id", id.String()),
			zap.Int("turns", work.Game.TurnNumber),
			zap.Stringp("winner", winnerString(result.WinnerID)),
		)
		if r.recorder != nil {
			if err := r.recorder.SaveReplay(id.String()); err != nil {
				r.logger.Warn("failed to save replay", zap.String("game_id", id.String()), zap.Error(err))
			}
		}
	}
	return result, nil
}

// DeleteGame drops a game from memory and the store.
func (r *Registry) DeleteGame(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	_, inMemory := r.games[id]
	delete(r.games, id)
	r.mu.Unlock()

	if r.recorder != nil {
		r.recorder.ClearReplay(id.String())
	}
	if r.store != nil {
		return r.store.Delete(ctx, id)
	}
	if !inMemory {
		return fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}
	return nil
}

// Count returns the number of games held in memory.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

func (r *Registry) commit(ctx context.Context, entry *gameEntry, work *game.GameState, events []rules.Event, label string) error {
	if r.store != nil {
		if err := r.store.Save(ctx, work); err != nil {
			return err
		}
		if err := r.store.AppendEvents(ctx, work.Game.ID, events); err != nil {
			return err
		}
	}
	entry.state = work
	if r.recorder != nil {
		r.recorder.RecordState(work, label)
	}
	if r.bus != nil {
		r.bus.PublishBatch(events)
	}
	return nil
}

func (r *Registry) entry(ctx context.Context, id uuid.UUID) (*gameEntry, error) {
	r.mu.RLock()
	entry, ok := r.games[id]
	r.mu.RUnlock()
	if ok {
		return entry, nil
	}
	if r.store == nil {
		return nil, fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}

	state, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.games[id]; ok {
		return existing, nil
	}
	entry = &gameEntry{state: state, dice: r.dice(id)}
	r.games[id] = entry
	r.logger.Debug("game loaded from store", zap.String("game_id", id.String()))
	return entry, nil
}

func winnerString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
