package rules

import "github.com/agentopoly/monopoly-engine/internal/game/board"

// MovementResult describes a single token move.
type MovementResult struct {
	From             int
	NewPosition      int
	PassedGo         bool
	LandedOnGoToJail bool
	SpacesMoved      int
}

// MoveBy moves a token by a signed number of spaces. Forward moves that
// reach or cross GO report PassedGo; backward moves never do.
func MoveBy(position, spaces int) MovementResult {
	newPos := board.Normalize(position + spaces)
	return MovementResult{
		From:             position,
		NewPosition:      newPos,
		PassedGo:         spaces > 0 && position+spaces >= board.BoardSize,
		LandedOnGoToJail: newPos == board.GoToJailPosition,
		SpacesMoved:      spaces,
	}
}

// MoveTo moves a token forward to destination. Moving to jail never pays GO.
func MoveTo(position, destination int) MovementResult {
	destination = board.Normalize(destination)
	spaces := destination - position
	if destination < position {
		spaces = board.BoardSize - position + destination
	}
	return MovementResult{
		From:             position,
		NewPosition:      destination,
		PassedGo:         destination < position && destination != board.JailPosition,
		LandedOnGoToJail: destination == board.GoToJailPosition,
		SpacesMoved:      spaces,
	}
}

// NearestOfKind returns the position of the next railroad or utility
// strictly ahead of position, wrapping past GO.
func NearestOfKind(position int, kind board.PropertyKind) int {
	var ids []string
	switch kind {
	case board.KindRailroad:
		ids = board.RailroadIDs()
	case board.KindUtility:
		ids = board.UtilityIDs()
	default:
		return position
	}

	positions := make([]int, 0, len(ids))
	for _, id := range ids {
		p, _ := board.LookupProperty(id)
		positions = append(positions, p.Position)
	}
	for _, p := range positions {
		if p > position {
			return p
		}
	}
	return positions[0]
}
