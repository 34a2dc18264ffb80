package cards

import (
	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/agentopoly/monopoly-engine/internal/game/rules"
	"github.com/google/uuid"
)

// Effect is what a drawn card asks the game to do. It is computed without
// touching game state. CashDelta covers bank transfers only; GO salary for
// a card move is reported through PassedGo and paid by the caller.
type Effect struct {
	CardID int
	Deck   board.DeckType
	Text   string

	CashDelta     int
	NewPosition   *int
	Movement      *rules.MovementResult
	PassedGo      bool
	GoToJail      bool
	GrantJailCard bool

	// Transfers between players keyed by counterparty.
	PaymentsToPlayers      map[uuid.UUID]int
	CollectionsFromPlayers map[uuid.UUID]int

	// RentMultiplier scales normal rent on the destination (railroad cards).
	RentMultiplier int
	// UtilityDiceMultiplier replaces utility rent with this many times the
	// dice total (utility card).
	UtilityDiceMultiplier int
}

// TotalPayments sums what the drawer owes other players.
func (e Effect) TotalPayments() int {
	total := 0
	for _, amt := range e.PaymentsToPlayers {
		total += amt
	}
	return total
}

// Execute resolves card for drawer. opponents should hold the other
// solvent players.
func Execute(card board.Card, drawer rules.PlayerView, opponents []rules.PlayerView, view rules.PropertyView) Effect {
	effect := Effect{CardID: card.ID, Deck: card.Deck, Text: card.Text}

	switch a := card.Action.(type) {
	case board.MoveTo:
		effect.applyMove(rules.MoveTo(drawer.Position, a.Position))

	case board.MoveToNearest:
		dest := rules.NearestOfKind(drawer.Position, a.Kind)
		effect.applyMove(rules.MoveTo(drawer.Position, dest))
		switch a.Kind {
		case board.KindRailroad:
			effect.RentMultiplier = 2
		case board.KindUtility:
			effect.UtilityDiceMultiplier = 10
		}

	case board.MoveRelative:
		effect.applyMove(rules.MoveBy(drawer.Position, a.Spaces))

	case board.Collect:
		effect.CashDelta = a.Amount

	case board.Pay:
		effect.CashDelta = -a.Amount

	case board.GetOutOfJailFree:
		effect.GrantJailCard = true

	case board.GoToJail:
		effect.GoToJail = true

	case board.PayPerBuilding:
		houses, hotels := rules.BuildingCounts(drawer.ID, view)
		effect.CashDelta = -(houses*a.PerHouse + hotels*a.PerHotel)

	case board.PayEachPlayer:
		effect.PaymentsToPlayers = make(map[uuid.UUID]int)
		for _, p := range opponents {
			if p.ID == drawer.ID || p.Bankrupt {
				continue
			}
			effect.PaymentsToPlayers[p.ID] = a.Amount
		}

	case board.CollectFromEachPlayer:
		effect.CollectionsFromPlayers = make(map[uuid.UUID]int)
		for _, p := range opponents {
			if p.ID == drawer.ID || p.Bankrupt {
				continue
			}
			effect.CollectionsFromPlayers[p.ID] = a.Amount
		}
	}

	return effect
}

func (e *Effect) applyMove(m rules.MovementResult) {
	pos := m.NewPosition
	e.NewPosition = &pos
	e.Movement = &m
	e.PassedGo = m.PassedGo
	if m.LandedOnGoToJail {
		e.GoToJail = true
	}
}
