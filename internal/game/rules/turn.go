package rules

import (
	"fmt"

	"github.com/google/uuid"
)

// TurnPhase is the position of the current player inside their turn.
type TurnPhase int

const (
	PhasePreRoll TurnPhase = iota
	PhaseAwaitingRoll
	PhaseAwaitingJailDecision
	PhaseAwaitingBuyDecision
	PhasePostRoll
	PhaseCompleted
)

var phaseNames = map[TurnPhase]string{
	PhasePreRoll:              "PRE_ROLL",
	PhaseAwaitingRoll:         "AWAITING_ROLL",
	PhaseAwaitingJailDecision: "AWAITING_JAIL_DECISION",
	PhaseAwaitingBuyDecision:  "AWAITING_BUY_DECISION",
	PhasePostRoll:             "POST_ROLL",
	PhaseCompleted:            "COMPLETED",
}

func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// ParseTurnPhase is the inverse of String.
func ParseTurnPhase(s string) (TurnPhase, error) {
	for phase, name := range phaseNames {
		if name == s {
			return phase, nil
		}
	}
	return 0, fmt.Errorf("unknown turn phase %q", s)
}

// ActionType names an agent decision.
type ActionType string

const (
	ActionRollDice       ActionType = "ROLL_DICE"
	ActionBuyProperty    ActionType = "BUY_PROPERTY"
	ActionPassProperty   ActionType = "PASS_PROPERTY"
	ActionBuildHouse     ActionType = "BUILD_HOUSE"
	ActionBuildHotel     ActionType = "BUILD_HOTEL"
	ActionPayJailFine    ActionType = "PAY_JAIL_FINE"
	ActionUseJailCard    ActionType = "USE_JAIL_CARD"
	ActionRollForDoubles ActionType = "ROLL_FOR_DOUBLES"
	ActionEndTurn        ActionType = "END_TURN"
)

var jailActions = []ActionType{ActionPayJailFine, ActionUseJailCard, ActionRollForDoubles}

// phaseActions is the static gate applied before any rule check.
var phaseActions = map[TurnPhase][]ActionType{
	PhasePreRoll:              append([]ActionType{ActionRollDice}, jailActions...),
	PhaseAwaitingRoll:         append([]ActionType{ActionRollDice}, jailActions...),
	PhaseAwaitingJailDecision: jailActions,
	PhaseAwaitingBuyDecision:  {ActionBuyProperty, ActionPassProperty, ActionEndTurn},
	PhasePostRoll:             {ActionBuildHouse, ActionBuildHotel, ActionEndTurn},
	PhaseCompleted:            nil,
}

// PhaseAllows reports whether action may be attempted during phase.
func PhaseAllows(phase TurnPhase, action ActionType) bool {
	for _, a := range phaseActions[phase] {
		if a == action {
			return true
		}
	}
	return false
}

// AllowedActions returns the action types phase admits.
func AllowedActions(phase TurnPhase) []ActionType {
	return append([]ActionType(nil), phaseActions[phase]...)
}

// MaxConsecutiveDoubles sends a player to jail on the third doubles.
const MaxConsecutiveDoubles = 3

// NextSeat returns the first solvent player after current in seat order,
// wrapping around. current may itself be bankrupt.
func NextSeat(seats []PlayerView, current uuid.UUID) (uuid.UUID, bool) {
	start := -1
	for i, p := range seats {
		if p.ID == current {
			start = i
			break
		}
	}
	if start < 0 {
		return uuid.Nil, false
	}
	for step := 1; step <= len(seats); step++ {
		p := seats[(start+step)%len(seats)]
		if !p.Bankrupt {
			return p.ID, true
		}
	}
	return uuid.Nil, false
}
