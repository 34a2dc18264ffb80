package simulation

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/agentopoly/monopoly-engine/internal/game"
)

// Turn is what an agent sees when asked to act.
type Turn struct {
	State   *game.GameState
	Player  *game.Player
	Actions []game.ValidAction
}

// Agent picks one of the offered actions.
type Agent interface {
	Name() string
	Choose(turn Turn) game.Action
}

// NewAgent builds an agent by kind: "random" or "greedy".
func NewAgent(kind string, seed int64) (Agent, error) {
	switch kind {
	case "random":
		return NewRandomAgent(seed), nil
	case "greedy":
		return NewGreedyAgent(DefaultReserve), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}

// RandomAgent picks uniformly among the valid actions.
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Name() string { return "random" }

func (a *RandomAgent) Choose(turn Turn) game.Action {
	a.mu.Lock()
	pick := turn.Actions[a.rng.Intn(len(turn.Actions))]
	a.mu.Unlock()
	return game.Action{Type: pick.Type, PlayerID: turn.Player.ID, PropertyID: pick.PropertyID}
}

// DefaultReserve is the cash a GreedyAgent keeps back.
const DefaultReserve = 150

// GreedyAgent buys and builds whenever it stays above Reserve afterwards,
// and leaves jail as soon as it can.
type GreedyAgent struct {
	Reserve int
}

func NewGreedyAgent(reserve int) *GreedyAgent {
	return &GreedyAgent{Reserve: reserve}
}

func (a *GreedyAgent) Name() string { return "greedy" }

func (a *GreedyAgent) Choose(turn Turn) game.Action {
	act := func(v game.ValidAction) game.Action {
		return game.Action{Type: v.Type, PlayerID: turn.Player.ID, PropertyID: v.PropertyID}
	}
	affordable := func(v game.ValidAction) bool {
		return turn.Player.Cash-v.Cost >= a.Reserve
	}

	preference := []game.ActionType{
		game.ActionUseJailCard,
		game.ActionPayJailFine,
		game.ActionBuyProperty,
		game.ActionBuildHotel,
		game.ActionBuildHouse,
	}
	for _, want := range preference {
		for _, v := range turn.Actions {
			if v.Type == want && affordable(v) {
				return act(v)
			}
		}
	}

	fallback := []game.ActionType{
		game.ActionRollDice,
		game.ActionRollForDoubles,
		game.ActionPassProperty,
		game.ActionEndTurn,
	}
	for _, want := range fallback {
		for _, v := range turn.Actions {
			if v.Type == want {
				return act(v)
			}
		}
	}
	return act(turn.Actions[0])
}
