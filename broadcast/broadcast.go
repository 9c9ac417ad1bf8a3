// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/cakeserver/room"
)

var ErrRoomNotFound = errors.New("room not found")

// Broadcaster fans one message out to a set of clients.
type Broadcaster interface {
	BroadcastToRoom(roomID string, v any) error
	BroadcastToAll(v any) error
}

// RoomBroadcaster delivers through the room registry. Sends are best effort:
// a closed connection is skipped, never an error for the room.
type RoomBroadcaster struct {
	registry *room.Registry
}

func NewRoomBroadcaster(registry *room.Registry) *RoomBroadcaster {
	return &RoomBroadcaster{registry: registry}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, v any) error {
	r, exists := b.registry.Get(roomID)
	if !exists {
		return ErrRoomNotFound
	}

	for _, s := range r.Sessions() {
		if err := s.Send(v); err != nil {
			// The peer is gone; disconnect handling will clean up.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToAll(v any) error {
	for _, id := range b.registry.RoomIDs() {
		b.BroadcastToRoom(id, v)
	}
	return nil
}
