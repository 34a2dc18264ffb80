package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
)

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	StatusWaiting    GameStatus = "waiting"
	StatusInProgress GameStatus = "in_progress"
	StatusCompleted  GameStatus = "completed"
)

const (
	DefaultStartingCash = 1500
	GoSalary            = 200
	MinPlayers          = 2
	MaxPlayers          = 6
)

// Settings holds per-game tunables.
type Settings struct {
	StartingCash int
	MinPlayers   int
	MaxPlayers   int
}

// DefaultSettings returns the standard rules.
func DefaultSettings() Settings {
	return Settings{StartingCash: DefaultStartingCash, MinPlayers: MinPlayers, MaxPlayers: MaxPlayers}
}

// Game is the game header. CurrentPlayerIndex indexes the solvent players
// in seat order, not the full seat list.
type Game struct {
	ID                 uuid.UUID
	Status             GameStatus
	CurrentPlayerIndex int
	TurnNumber         int
	TurnPhase          rules.TurnPhase
	DoublesCount       int
	LastDiceRoll       *rules.DiceRoll
	WinnerID           *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Player is one seat at the table.
type Player struct {
	ID            uuid.UUID
	Name          string
	Agent         string
	Order         int
	Position      int
	Cash          int
	InJail        bool
	JailTurns     int
	JailFreeCards int
	Bankrupt      bool
}

// View returns the read-only projection used by the rules package.
func (p *Player) View() rules.PlayerView {
	return rules.PlayerView{
		ID:            p.ID,
		Cash:          p.Cash,
		Position:      p.Position,
		InJail:        p.InJail,
		JailTurns:     p.JailTurns,
		JailFreeCards: p.JailFreeCards,
		Bankrupt:      p.Bankrupt,
	}
}

// PropertyState is the mutable part of a property.
type PropertyState struct {
	PropertyID string
	OwnerID    *uuid.UUID
	Houses     int
}

// Seat describes a player joining a new game.
type Seat struct {
	Name  string
	Agent string
}

// GameState aggregates everything the engine reads and writes for one game.
type GameState struct {
	Game       Game
	Players    []*Player
	Properties map[string]*PropertyState
	Decks      map[board.DeckType]*cards.Deck
}

// NewGameState seats players, creates the 28 unowned property rows and
// shuffles both decks with rng.
func NewGameState(seats []Seat, settings Settings, rng *rand.Rand) (*GameState, error) {
	if settings.StartingCash <= 0 {
		settings.StartingCash = DefaultStartingCash
	}
	if settings.MinPlayers <= 0 {
		settings.MinPlayers = MinPlayers
	}
	if settings.MaxPlayers <= 0 {
		settings.MaxPlayers = MaxPlayers
	}
	if len(seats) < settings.MinPlayers || len(seats) > settings.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d, need %d-%d", ErrInvalidPlayerCount, len(seats), settings.MinPlayers, settings.MaxPlayers)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	now := time.Now()
	state := &GameState{
		Game: Game{
			ID:        uuid.New(),
			Status:    StatusWaiting,
			TurnPhase: rules.PhasePreRoll,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Players:    make([]*Player, 0, len(seats)),
		Properties: make(map[string]*PropertyState, 28),
		Decks: map[board.DeckType]*cards.Deck{
			board.DeckChance:         cards.NewShuffledDeck(board.DeckChance, rng),
			board.DeckCommunityChest: cards.NewShuffledDeck(board.DeckCommunityChest, rng),
		},
	}
	for i, seat := range seats {
		state.Players = append(state.Players, &Player{
			ID:    uuid.New(),
			Name:  seat.Name,
			Agent: seat.Agent,
			Order: i,
			Cash:  settings.StartingCash,
		})
	}
	for _, id := range board.PropertyIDs() {
		state.Properties[id] = &PropertyState{PropertyID: id}
	}
	return state, nil
}

// Start moves a waiting game into play with the first seat to act.
func (s *GameState) Start() error {
	if s.Game.Status != StatusWaiting {
		return fmt.Errorf("start game %s: status is %s", s.Game.ID, s.Game.Status)
	}
	s.Game.Status = StatusInProgress
	s.Game.TurnNumber = 1
	s.Game.CurrentPlayerIndex = 0
	s.Game.TurnPhase = rules.PhasePreRoll
	s.Game.DoublesCount = 0
	s.Game.UpdatedAt = time.Now()
	return nil
}

// OwnerOf implements rules.PropertyView.
func (s *GameState) OwnerOf(propertyID string) (uuid.UUID, bool) {
	ps, ok := s.Properties[propertyID]
	if !ok || ps.OwnerID == nil {
		return uuid.Nil, false
	}
	return *ps.OwnerID, true
}

// HousesOn implements rules.PropertyView.
func (s *GameState) HousesOn(propertyID string) int {
	if ps, ok := s.Properties[propertyID]; ok {
		return ps.Houses
	}
	return 0
}

// ActivePlayers returns solvent players in seat order.
func (s *GameState) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() (*Player, error) {
	active := s.ActivePlayers()
	if len(active) == 0 {
		return nil, fmt.Errorf("game %s has no active players", s.Game.ID)
	}
	idx := s.Game.CurrentPlayerIndex
	if idx < 0 || idx >= len(active) {
		return nil, fmt.Errorf("game %s: current player index %d out of range", s.Game.ID, idx)
	}
	return active[idx], nil
}

// Player looks a player up by id.
func (s *GameState) Player(id uuid.UUID) (*Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (s *GameState) playerViews() []rules.PlayerView {
	out := make([]rules.PlayerView, len(s.Players))
	for i, p := range s.Players {
		out[i] = p.View()
	}
	return out
}

func (s *GameState) activeIndexOf(id uuid.UUID) int {
	for i, p := range s.ActivePlayers() {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// NetWorth reports a player's cash plus holdings.
func (s *GameState) NetWorth(id uuid.UUID) int {
	p, ok := s.Player(id)
	if !ok {
		return 0
	}
	return rules.NetWorth(p.View(), s)
}

// Clone returns a deep copy.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		Game:       s.Game,
		Players:    make([]*Player, len(s.Players)),
		Properties: make(map[string]*PropertyState, len(s.Properties)),
		Decks:      make(map[board.DeckType]*cards.Deck, len(s.Decks)),
	}
	if s.Game.LastDiceRoll != nil {
		roll := *s.Game.LastDiceRoll
		out.Game.LastDiceRoll = &roll
	}
	if s.Game.WinnerID != nil {
		w := *s.Game.WinnerID
		out.Game.WinnerID = &w
	}
	for i, p := range s.Players {
		cp := *p
		out.Players[i] = &cp
	}
	for id, ps := range s.Properties {
		cp := *ps
		if ps.OwnerID != nil {
			owner := *ps.OwnerID
			cp.OwnerID = &owner
		}
		out.Properties[id] = &cp
	}
	for t, d := range s.Decks {
		out.Decks[t] = d.Clone()
	}
	return out
}
