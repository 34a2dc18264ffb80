package rules

import (
	"fmt"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/google/uuid"
)

// BankruptcyResult is the verdict on a debt. Creditor nil means the bank.
type BankruptcyResult struct {
	IsBankrupt bool
	PlayerID   uuid.UUID
	Debt       int
	Shortfall  int
	Creditor   *uuid.UUID
	Message    string
}

// CheckBankruptcy reports whether player cannot cover debt.
func CheckBankruptcy(player PlayerView, debt int, creditor *uuid.UUID) BankruptcyResult {
	res := BankruptcyResult{PlayerID: player.ID, Debt: debt, Creditor: creditor}
	if player.Cash >= debt {
		return res
	}
	res.IsBankrupt = true
	res.Shortfall = debt - player.Cash
	to := "the bank"
	if creditor != nil {
		to = creditor.String()
	}
	res.Message = fmt.Sprintf("cannot pay $%d to %s (cash $%d)", debt, to, player.Cash)
	return res
}

// PropertyDisposition describes where a bankrupt player's holding goes.
type PropertyDisposition struct {
	PropertyID string
	NewOwner   *uuid.UUID
	Houses     int
}

// Dispositions computes the transfers for a bankruptcy. Property returned
// to the bank loses its buildings; a player creditor receives it intact.
func Dispositions(debtor uuid.UUID, creditor *uuid.UUID, view PropertyView) []PropertyDisposition {
	owned := OwnedProperties(debtor, view)
	out := make([]PropertyDisposition, 0, len(owned))
	for _, id := range owned {
		d := PropertyDisposition{PropertyID: id}
		if creditor != nil {
			c := *creditor
			d.NewOwner = &c
			d.Houses = view.HousesOn(id)
		}
		out = append(out, d)
	}
	return out
}

// NetWorth is cash plus purchase price of holdings plus half of the
// cumulative building spend. A hotel counts as five purchases.
func NetWorth(player PlayerView, view PropertyView) int {
	total := player.Cash
	for _, id := range OwnedProperties(player.ID, view) {
		prop, _ := board.LookupProperty(id)
		total += prop.Price
		total += prop.HouseCost * view.HousesOn(id) / 2
	}
	return total
}

// ActivePlayers filters out bankrupt players, preserving order.
func ActivePlayers(players []PlayerView) []PlayerView {
	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		if !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// IsGameOver reports whether at most one player remains solvent.
func IsGameOver(players []PlayerView) bool {
	return len(ActivePlayers(players)) <= 1
}

// Winner returns the sole remaining player, if the game is decided.
func Winner(players []PlayerView) (uuid.UUID, bool) {
	active := ActivePlayers(players)
	if len(active) != 1 {
		return uuid.Nil, false
	}
	return active[0].ID, true
}
