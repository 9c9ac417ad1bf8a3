// protocol/protocol.go
package protocol

import (
	"github.com/wfunc/cakeserver/game"
)

// Message type discriminators. Every wire message is one JSON object with a
// "type" field holding one of these values.
const (
	// client -> server
	TypePing         = "ping"
	TypeCreateRoom   = "create_room"
	TypeJoinRoom     = "join_room"
	TypeSetCakes     = "set_cakes"
	TypeChoosePoison = "choose_poison"
	TypeSelectCake   = "select_cake"
	TypeRestartGame  = "restart_game"
	TypeLeaveRoom    = "leave_room"

	// server -> client
	TypeError                = "error"
	TypeRoomCreated          = "room_created"
	TypePlayerJoined         = "player_joined"
	TypeGameStarted          = "game_started"
	TypePoisonChosen         = "poison_chosen"
	TypeOpponentPoisonChosen = "opponent_poison_chosen"
	TypeAllPoisonsChosen     = "all_poisons_chosen"
	TypeCakeSelected         = "cake_selected"
	TypeGameOver             = "game_over"
	TypeGameRestarted        = "game_restarted"
	TypeOpponentDisconnected = "opponent_disconnected"
	TypeRoomLeft             = "room_left"
	TypeRequestRestartGame   = "request_restart_game"
)

// Inbound is the closed set of client messages. Decode returns one of the
// pointer types below; the dispatcher switches over them exhaustively.
type Inbound interface {
	inbound()
}

type Ping struct{}

type CreateRoom struct {
	RoomID string `json:"roomId"`
}

type JoinRoom struct {
	RoomID string `json:"roomId"`
}

type SetCakes struct {
	GridSize   int    `json:"gridSize"`
	WhoGoFirst string `json:"who_go_first"`
}

type ChoosePoison struct {
	Position *game.Position `json:"position"`
}

type SelectCake struct {
	Position *game.Position `json:"position"`
}

type RestartGame struct{}

type LeaveRoom struct{}

func (*Ping) inbound()         {}
func (*CreateRoom) inbound()   {}
func (*JoinRoom) inbound()     {}
func (*SetCakes) inbound()     {}
func (*ChoosePoison) inbound() {}
func (*SelectCake) inbound()   {}
func (*RestartGame) inbound()  {}
func (*LeaveRoom) inbound()    {}
