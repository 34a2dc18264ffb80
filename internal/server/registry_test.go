package server

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryStore struct {
	mu      sync.Mutex
	games   map[uuid.UUID]*game.GameState
	events  map[uuid.UUID][]rules.Event
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		games:  make(map[uuid.UUID]*game.GameState),
		events: make(map[uuid.UUID][]rules.Event),
	}
}

func (s *memoryStore) Create(_ context.Context, state *game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[state.Game.ID] = state.Clone()
	return nil
}

func (s *memoryStore) Save(_ context.Context, state *game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.games[state.Game.ID] = state.Clone()
	return nil
}

func (s *memoryStore) Load(_ context.Context, id uuid.UUID) (*game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.games[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return state.Clone(), nil
}

func (s *memoryStore) AppendEvents(_ context.Context, id uuid.UUID, events []rules.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[id] = append(s.events[id], events...)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return game.ErrGameNotFound
	}
	delete(s.games, id)
	return nil
}

func fixedDice(pairs ...[2]int) RegistryOption {
	return WithDice(func(uuid.UUID) rules.Dice { return rules.NewSequenceDice(pairs...) })
}

func startedGame(t *testing.T, r *Registry) *game.GameState {
	t.Helper()
	ctx := context.Background()
	state, err := r.CreateGame(ctx, []game.Seat{{Name: "Alice"}, {Name: "Bob"}})
	require.NoError(t, err)
	state, err = r.StartGame(ctx, state.Game.ID)
	require.NoError(t, err)
	return state
}

func TestRegistryFullTurn(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t), fixedDice([2]int{1, 2}), WithSeed(1))
	ctx := context.Background()
	state := startedGame(t, r)
	id := state.Game.ID
	alice, bob := state.Players[0].ID, state.Players[1].ID

	result, err := r.ApplyAction(ctx, id, game.Action{Type: game.ActionRollDice, PlayerID: alice})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, rules.PhaseAwaitingBuyDecision, result.NextPhase)

	actions, err := r.ListValidActions(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, actions)

	result, err = r.ApplyAction(ctx, id, game.Action{Type: game.ActionBuyProperty, PlayerID: alice, PropertyID: "baltic"})
	require.NoError(t, err)
	require.True(t, result.Success, result.Message)

	result, err = r.ApplyAction(ctx, id, game.Action{Type: game.ActionEndTurn, PlayerID: alice})
	require.NoError(t, err)
	require.True(t, result.Success)

	current, err := r.GetGame(ctx, id)
	require.NoError(t, err)
	p, err := current.CurrentPlayer()
	require.NoError(t, err)
	assert.Equal(t, bob, p.ID)
	assert.Equal(t, 1440, current.Players[0].Cash)
	owner, owned := current.OwnerOf("baltic")
	assert.True(t, owned)
	assert.Equal(t, alice, owner)
}

func TestRegistryRejectsWrongPlayerWithoutMutation(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t), fixedDice([2]int{1, 2}))
	ctx := context.Background()
	state := startedGame(t, r)
	bob := state.Players[1].ID

	_, err := r.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionRollDice, PlayerID: bob})
	require.ErrorIs(t, err, game.ErrNotYourTurn)

	after, err := r.GetGame(ctx, state.Game.ID)
	require.NoError(t, err)
	assert.Equal(t, rules.PhasePreRoll, after.Game.TurnPhase)
	assert.Nil(t, after.Game.LastDiceRoll)
}

func TestRegistryIllegalActionIsNotAnError(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	ctx := context.Background()
	state := startedGame(t, r)

	result, err := r.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionBuyProperty, PropertyID: "baltic"})
	require.NoError(t, err)
	assert.False(t, result.Success)

	_, err = r.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionBuyProperty, PropertyID: "atlantis"})
	assert.ErrorIs(t, err, game.ErrUnknownProperty)
}

func TestRegistryStoreFailureLeavesStateUntouched(t *testing.T) {
	store := newMemoryStore()
	r := NewRegistry(zaptest.NewLogger(t), WithStore(store), fixedDice([2]int{1, 2}))
	ctx := context.Background()
	state := startedGame(t, r)

	store.saveErr = errors.New("disk full")
	_, err := r.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionRollDice})
	require.Error(t, err)

	after, err := r.GetGame(ctx, state.Game.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Players[0].Position)
	assert.Equal(t, rules.PhasePreRoll, after.Game.TurnPhase)
}

func TestRegistryPersistsAndReloads(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	r := NewRegistry(zaptest.NewLogger(t), WithStore(store), fixedDice([2]int{1, 2}))
	state := startedGame(t, r)

	_, err := r.ApplyAction(ctx, state.Game.ID, game.Action{Type: game.ActionRollDice})
	require.NoError(t, err)
	assert.NotEmpty(t, store.events[state.Game.ID])

	fresh := NewRegistry(zaptest.NewLogger(t), WithStore(store))
	loaded, err := fresh.GetGame(ctx, state.Game.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Players[0].Position)
	assert.Equal(t, 1, fresh.Count())

	require.NoError(t, fresh.DeleteGame(ctx, state.Game.ID))
	_, err = fresh.GetGame(ctx, state.Game.ID)
	assert.ErrorIs(t, err, game.ErrGameNotFound)
}

func TestRegistryPublishesCommittedEvents(t *testing.T) {
	bus := rules.NewEventBus()
	var seen []rules.EventType
	bus.Subscribe(func(e rules.Event) { seen = append(seen, e.Type) })

	r := NewRegistry(zaptest.NewLogger(t), WithEventBus(bus), fixedDice([2]int{1, 2}))
	state := startedGame(t, r)
	_, err := r.ApplyAction(context.Background(), state.Game.ID, game.Action{Type: game.ActionRollDice})
	require.NoError(t, err)

	assert.Contains(t, seen, rules.EventGameStarted)
	assert.Contains(t, seen, rules.EventDiceRolled)
}

func TestRegistryUnknownGame(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.GetGame(context.Background(), uuid.New())
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	assert.ErrorIs(t, r.DeleteGame(context.Background(), uuid.New()), game.ErrGameNotFound)
}

func TestRegistryRejectsBadPlayerCount(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.CreateGame(context.Background(), []game.Seat{{Name: "Solo"}})
	assert.ErrorIs(t, err, game.ErrInvalidPlayerCount)
}
