package game

import (
	"github.com/agentopoly/monopoly-engine/internal/game/cards"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
)

// ActionType re-exports the rules action names for callers of this package.
type ActionType = rules.ActionType

const (
	ActionRollDice       = rules.ActionRollDice
	ActionBuyProperty    = rules.ActionBuyProperty
	ActionPassProperty   = rules.ActionPassProperty
	ActionBuildHouse     = rules.ActionBuildHouse
	ActionBuildHotel     = rules.ActionBuildHotel
	ActionPayJailFine    = rules.ActionPayJailFine
	ActionUseJailCard    = rules.ActionUseJailCard
	ActionRollForDoubles = rules.ActionRollForDoubles
	ActionEndTurn        = rules.ActionEndTurn
)

// Action is an agent's decision. PlayerID may be uuid.Nil when the caller
// has already checked turn ownership.
type Action struct {
	Type       ActionType
	PlayerID   uuid.UUID
	PropertyID string
}

// String renders the action as a replay label, e.g. "BUY_PROPERTY baltic".
func (a Action) String() string {
	if a.PropertyID == "" {
		return string(a.Type)
	}
	return string(a.Type) + " " + a.PropertyID
}

// ValidAction is one legal move for the current player.
type ValidAction struct {
	Type        ActionType
	PropertyID  string
	Cost        int
	Description string
}

// ActionResult reports everything an action did.
type ActionResult struct {
	Success      bool
	Message      string
	DiceRoll     *rules.DiceRoll
	Movement     *rules.MovementResult
	CardEffect   *cards.Effect
	JailResult   *rules.JailEscapeResult
	Bankruptcies []rules.BankruptcyResult
	RentPaid     int
	RentTo       *uuid.UUID
	TaxPaid      int
	NextPhase    rules.TurnPhase
	TurnComplete bool
	GameOver     bool
	WinnerID     *uuid.UUID
	Events       []rules.Event
}
