package room

import (
	"errors"
)

// Validation failures reported back to the offending sender as an error
// message. None of them mutate room state and none reach the other player.
var (
	ErrInvalidRoomID            = errors.New("room id must be exactly 4 digits")
	ErrRoomExists               = errors.New("room already exists")
	ErrRoomNotFound             = errors.New("room not found")
	ErrRoomFull                 = errors.New("room is full")
	ErrGameInProgress           = errors.New("game already in progress")
	ErrNotHost                  = errors.New("you are not the host, the host has been asked")
	ErrAwaitingSecondPlayer     = errors.New("waiting for another player to join")
	ErrInvalidGridSize          = errors.New("grid size must be between 3 and 8")
	ErrInvalidFirstPlayerPolicy = errors.New("please choose a first player setting")
	ErrPoisonAlreadyChosen      = errors.New("you have already chosen your poison")
	ErrOutOfBounds              = errors.New("invalid position")
	ErrCellAlreadyRevealed      = errors.New("that cake has already been selected")
	ErrNotYourTurn              = errors.New("it is not your turn")
)
