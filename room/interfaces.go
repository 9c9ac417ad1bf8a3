package room

import (
	"github.com/wfunc/cakeserver/models"
)

// Broadcaster sends one message to every player in a room. Defined here to
// break the import cycle between room and broadcast.
type Broadcaster interface {
	BroadcastToRoom(roomID string, v any) error
}

// Recorder receives a record of every completed game. Implementations must be
// safe to call from a goroutine; a nil Recorder disables recording.
type Recorder interface {
	RecordMatch(record models.MatchRecord)
}
