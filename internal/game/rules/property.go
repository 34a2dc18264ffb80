package rules

import (
	"fmt"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
	"github.com/google/uuid"
)

// DefaultUtilityDice is the dice total assumed when utility rent is asked
// for without a roll.
const DefaultUtilityDice = 7

// PlayerView is the slice of player state the rules read.
type PlayerView struct {
	ID            uuid.UUID
	Cash          int
	Position      int
	InJail        bool
	JailTurns     int
	JailFreeCards int
	Bankrupt      bool
}

// PropertyView exposes ownership and buildings without allowing mutation.
type PropertyView interface {
	OwnerOf(propertyID string) (uuid.UUID, bool)
	HousesOn(propertyID string) int
}

// CanBuy reports whether player may buy propertyID from the bank.
func CanBuy(propertyID string, player PlayerView, view PropertyView) (bool, string) {
	prop, ok := board.LookupProperty(propertyID)
	if !ok {
		return false, fmt.Sprintf("unknown property %q", propertyID)
	}
	if player.Bankrupt {
		return false, "bankrupt players cannot buy property"
	}
	if _, owned := view.OwnerOf(propertyID); owned {
		return false, fmt.Sprintf("%s is already owned", prop.Name)
	}
	if player.Cash < prop.Price {
		return false, fmt.Sprintf("insufficient funds: %s costs $%d, have $%d", prop.Name, prop.Price, player.Cash)
	}
	return true, ""
}

// OwnsColorGroup reports whether owner holds every street of color.
func OwnsColorGroup(owner uuid.UUID, color board.Color, view PropertyView) bool {
	group := board.ColorGroup(color)
	if len(group) == 0 {
		return false
	}
	for _, id := range group {
		o, ok := view.OwnerOf(id)
		if !ok || o != owner {
			return false
		}
	}
	return true
}

// CountOwnedOfKind counts railroads or utilities held by owner.
func CountOwnedOfKind(owner uuid.UUID, kind board.PropertyKind, view PropertyView) int {
	var ids []string
	switch kind {
	case board.KindRailroad:
		ids = board.RailroadIDs()
	case board.KindUtility:
		ids = board.UtilityIDs()
	}
	n := 0
	for _, id := range ids {
		if o, ok := view.OwnerOf(id); ok && o == owner {
			n++
		}
	}
	return n
}

// CalculateRent returns the rent owed for landing on propertyID. Unowned
// properties charge nothing. A non-positive diceTotal falls back to 7.
func CalculateRent(propertyID string, view PropertyView, diceTotal int) int {
	prop, ok := board.LookupProperty(propertyID)
	if !ok {
		return 0
	}
	owner, owned := view.OwnerOf(propertyID)
	if !owned {
		return 0
	}

	switch prop.Kind {
	case board.KindStreet:
		houses := view.HousesOn(propertyID)
		if houses > 0 {
			if houses > board.HotelLevel {
				houses = board.HotelLevel
			}
			return prop.Rent[houses]
		}
		if OwnsColorGroup(owner, prop.Color, view) {
			return prop.Rent[0] * 2
		}
		return prop.Rent[0]
	case board.KindRailroad:
		n := CountOwnedOfKind(owner, board.KindRailroad, view)
		if n == 0 {
			return 0
		}
		return 25 << (n - 1)
	case board.KindUtility:
		if diceTotal <= 0 {
			diceTotal = DefaultUtilityDice
		}
		if CountOwnedOfKind(owner, board.KindUtility, view) >= 2 {
			return 10 * diceTotal
		}
		return 4 * diceTotal
	}
	return 0
}

// BuildingCounts tallies houses and hotels held by owner.
func BuildingCounts(owner uuid.UUID, view PropertyView) (houses, hotels int) {
	for _, id := range board.PropertyIDs() {
		o, ok := view.OwnerOf(id)
		if !ok || o != owner {
			continue
		}
		h := view.HousesOn(id)
		if h == board.HotelLevel {
			hotels++
		} else {
			houses += h
		}
	}
	return houses, hotels
}

// OwnedProperties lists the property ids held by owner in board order.
func OwnedProperties(owner uuid.UUID, view PropertyView) []string {
	var out []string
	for _, id := range board.PropertyIDs() {
		if o, ok := view.OwnerOf(id); ok && o == owner {
			out = append(out, id)
		}
	}
	return out
}
