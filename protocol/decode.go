package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks input that cannot be decoded into a known message. The
// dispatcher logs such messages and drops them without a reply.
var ErrMalformed = errors.New("malformed message")

// Decode parses one wire frame into its typed inbound message.
func Decode(data []byte) (Inbound, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var msg Inbound
	switch envelope.Type {
	case TypePing:
		msg = &Ping{}
	case TypeCreateRoom:
		msg = &CreateRoom{}
	case TypeJoinRoom:
		msg = &JoinRoom{}
	case TypeSetCakes:
		msg = &SetCakes{}
	case TypeChoosePoison:
		msg = &ChoosePoison{}
	case TypeSelectCake:
		msg = &SelectCake{}
	case TypeRestartGame:
		msg = &RestartGame{}
	case TypeLeaveRoom:
		msg = &LeaveRoom{}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformed, envelope.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return msg, nil
}
