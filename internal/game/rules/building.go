package rules

import (
	"fmt"

	"github.com/agentopoly/monopoly-engine/internal/game/board"
)

// MaxHouses is the last house level before a hotel.
const MaxHouses = 4

// BuildKind distinguishes a house purchase from a hotel upgrade.
type BuildKind string

const (
	BuildHouse BuildKind = "house"
	BuildHotel BuildKind = "hotel"
)

// BuildOption is a legal build for the current player.
type BuildOption struct {
	PropertyID string
	Kind       BuildKind
	Cost       int
}

// CanBuildHouse checks every house-building rule for propertyID.
func CanBuildHouse(propertyID string, player PlayerView, view PropertyView) (bool, string) {
	prop, reason := buildableStreet(propertyID, player, view)
	if reason != "" {
		return false, reason
	}
	houses := view.HousesOn(propertyID)
	for _, sibling := range board.ColorGroup(prop.Color) {
		if sibling == propertyID {
			continue
		}
		if view.HousesOn(sibling) < houses {
			return false, fmt.Sprintf("must build evenly: %s has fewer houses", sibling)
		}
	}
	if houses >= MaxHouses {
		return false, fmt.Sprintf("%s already has %d houses; build a hotel instead", prop.Name, houses)
	}
	if player.Cash < prop.HouseCost {
		return false, fmt.Sprintf("insufficient funds: house costs $%d, have $%d", prop.HouseCost, player.Cash)
	}
	return true, ""
}

// CanBuildHotel checks every hotel rule for propertyID.
func CanBuildHotel(propertyID string, player PlayerView, view PropertyView) (bool, string) {
	prop, reason := buildableStreet(propertyID, player, view)
	if reason != "" {
		return false, reason
	}
	houses := view.HousesOn(propertyID)
	if houses == board.HotelLevel {
		return false, fmt.Sprintf("%s already has a hotel", prop.Name)
	}
	if houses != MaxHouses {
		return false, fmt.Sprintf("%s needs %d houses before a hotel", prop.Name, MaxHouses)
	}
	for _, sibling := range board.ColorGroup(prop.Color) {
		if view.HousesOn(sibling) < MaxHouses {
			return false, fmt.Sprintf("every property in the group needs %d houses first", MaxHouses)
		}
	}
	if player.Cash < prop.HouseCost {
		return false, fmt.Sprintf("insufficient funds: hotel costs $%d, have $%d", prop.HouseCost, player.Cash)
	}
	return true, ""
}

func buildableStreet(propertyID string, player PlayerView, view PropertyView) (board.Property, string) {
	prop, ok := board.LookupProperty(propertyID)
	if !ok {
		return prop, fmt.Sprintf("unknown property %q", propertyID)
	}
	if prop.Kind != board.KindStreet {
		return prop, fmt.Sprintf("cannot build on %s", prop.Name)
	}
	owner, owned := view.OwnerOf(propertyID)
	if !owned || owner != player.ID {
		return prop, fmt.Sprintf("you do not own %s", prop.Name)
	}
	if !OwnsColorGroup(player.ID, prop.Color, view) {
		return prop, fmt.Sprintf("must own all %s properties to build", prop.Color)
	}
	return prop, ""
}

// BuildableProperties lists every legal build for player in board order.
func BuildableProperties(player PlayerView, view PropertyView) []BuildOption {
	var out []BuildOption
	for _, id := range board.PropertyIDs() {
		prop, _ := board.LookupProperty(id)
		if prop.Kind != board.KindStreet {
			continue
		}
		if ok, _ := CanBuildHouse(id, player, view); ok {
			out = append(out, BuildOption{PropertyID: id, Kind: BuildHouse, Cost: prop.HouseCost})
		} else if ok, _ := CanBuildHotel(id, player, view); ok {
			out = append(out, BuildOption{PropertyID: id, Kind: BuildHotel, Cost: prop.HouseCost})
		}
	}
	return out
}
