package protocol

import (
	"github.com/wfunc/cakeserver/game"
)

// Outbound messages are plain structs with the type discriminator baked in by
// their constructors; the connection layer marshals them as-is.

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) Error {
	return Error{Type: TypeError, Message: message}
}

type RoomCreated struct {
	Type   string    `json:"type"`
	RoomID string    `json:"roomId"`
	Role   game.Role `json:"role"`
}

func NewRoomCreated(roomID string, role game.Role) RoomCreated {
	return RoomCreated{Type: TypeRoomCreated, RoomID: roomID, Role: role}
}

type PlayerJoined struct {
	Type   string    `json:"type"`
	RoomID string    `json:"roomId"`
	Role   game.Role `json:"role"`
	State  string    `json:"state"`
}

func NewPlayerJoined(roomID string, role game.Role, phase string) PlayerJoined {
	return PlayerJoined{Type: TypePlayerJoined, RoomID: roomID, Role: role, State: phase}
}

type GameStarted struct {
	Type          string     `json:"type"`
	GridSize      int        `json:"gridSize"`
	State         string     `json:"state"`
	IsTurn        bool       `json:"isTurn"`
	CurrentPlayer *game.Role `json:"currentPlayer"`
}

func NewGameStarted(gridSize int, phase string) GameStarted {
	// No turn exists while poisons are being chosen.
	return GameStarted{Type: TypeGameStarted, GridSize: gridSize, State: phase}
}

type PoisonChosen struct {
	Type             string        `json:"type"`
	YourPoison       game.Position `json:"yourPoison"`
	AllPoisonsChosen bool          `json:"allPoisonsChosen"`
}

func NewPoisonChosen(pos game.Position) PoisonChosen {
	return PoisonChosen{Type: TypePoisonChosen, YourPoison: pos}
}

type OpponentPoisonChosen struct {
	Type         string    `json:"type"`
	OpponentRole game.Role `json:"opponentRole"`
}

func NewOpponentPoisonChosen(role game.Role) OpponentPoisonChosen {
	return OpponentPoisonChosen{Type: TypeOpponentPoisonChosen, OpponentRole: role}
}

type AllPoisonsChosen struct {
	Type          string        `json:"type"`
	YourPoison    game.Position `json:"yourPoison"`
	State         string        `json:"state"`
	IsTurn        bool          `json:"isTurn"`
	CurrentPlayer game.Role     `json:"currentPlayer"`
}

func NewAllPoisonsChosen(poison game.Position, phase string, isTurn bool, current game.Role) AllPoisonsChosen {
	return AllPoisonsChosen{
		Type:          TypeAllPoisonsChosen,
		YourPoison:    poison,
		State:         phase,
		IsTurn:        isTurn,
		CurrentPlayer: current,
	}
}

type CakeSelected struct {
	Type             string          `json:"type"`
	SelectedPosition game.Position   `json:"selectedPosition"`
	SelectedBy       game.Role       `json:"selectedBy"`
	IsTurn           bool            `json:"isTurn"`
	CurrentPlayer    game.Role       `json:"currentPlayer"`
	SelectedCakes    []game.Position `json:"selectedCakes"`
}

func NewCakeSelected(pos game.Position, by game.Role, isTurn bool, current game.Role, revealed []game.Position) CakeSelected {
	return CakeSelected{
		Type:             TypeCakeSelected,
		SelectedPosition: pos,
		SelectedBy:       by,
		IsTurn:           isTurn,
		CurrentPlayer:    current,
		SelectedCakes:    revealed,
	}
}

type GameOver struct {
	Type             string         `json:"type"`
	Winner           game.Role      `json:"winner"`
	Loser            game.Role      `json:"loser"`
	LastWinners      []game.Role    `json:"lastWinners"`
	SelectedPosition game.Position  `json:"selectedPosition"`
	PoisonOwner      game.Role      `json:"poisonOwner"`
	IsSelfPoison     bool           `json:"isSelfPoison"`
	YourRole         game.Role      `json:"yourRole"`
	YourPoison       *game.Position `json:"yourPoison"`
	OpponentPoison   *game.Position `json:"opponentPoison"`
}

type GameRestarted struct {
	Type          string     `json:"type"`
	GridSize      int        `json:"gridSize"`
	State         string     `json:"state"`
	IsTurn        bool       `json:"isTurn"`
	CurrentPlayer *game.Role `json:"currentPlayer"`
}

func NewGameRestarted(gridSize int, phase string) GameRestarted {
	return GameRestarted{Type: TypeGameRestarted, GridSize: gridSize, State: phase}
}

type OpponentDisconnected struct {
	Type string `json:"type"`
}

func NewOpponentDisconnected() OpponentDisconnected {
	return OpponentDisconnected{Type: TypeOpponentDisconnected}
}

type RoomLeft struct {
	Type string `json:"type"`
}

func NewRoomLeft() RoomLeft {
	return RoomLeft{Type: TypeRoomLeft}
}

type RequestRestartGame struct {
	Type      string    `json:"type"`
	Requester game.Role `json:"requester"`
}

func NewRequestRestartGame(requester game.Role) RequestRestartGame {
	return RequestRestartGame{Type: TypeRequestRestartGame, Requester: requester}
}
