package game

import "errors"

var (
	ErrNotYourTurn        = errors.New("not your turn")
	ErrUnknownProperty    = errors.New("unknown property")
	ErrUnknownCard        = errors.New("unknown card")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrGameNotInProgress  = errors.New("game not in progress")
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrGameNotFound       = errors.New("game not found")
)
