// room/registry.go
package room

import (
	"regexp"
	"sync"

	"github.com/wfunc/cakeserver/game"
	"github.com/wfunc/cakeserver/protocol"
	"github.com/wfunc/cakeserver/session"
)

var roomIDPattern = regexp.MustCompile(`^\d{4}$`)

// Registry owns the process-wide room table. A room exists from Create until
// its last player leaves; a room with zero players is deleted immediately.
type Registry struct {
	rooms       map[string]*Room
	mutex       sync.RWMutex
	broadcaster Broadcaster
	recorder    Recorder
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// SetBroadcaster wires the broadcaster used by rooms created from now on.
// The broadcaster itself needs the registry, hence the two-step wiring.
func (reg *Registry) SetBroadcaster(b Broadcaster) {
	reg.broadcaster = b
}

// SetRecorder wires the match recorder. A nil recorder disables recording.
func (reg *Registry) SetRecorder(rec Recorder) {
	reg.recorder = rec
}

// Create registers a new room with sess seated as host and acknowledges it.
func (reg *Registry) Create(roomID string, sess *session.Session) error {
	if !roomIDPattern.MatchString(roomID) {
		return ErrInvalidRoomID
	}

	reg.mutex.Lock()
	defer reg.mutex.Unlock()

	if _, exists := reg.rooms[roomID]; exists {
		return ErrRoomExists
	}

	r := newRoom(roomID, reg.broadcaster, reg.recorder)
	r.addPlayer(sess, game.RoleHost)
	reg.rooms[roomID] = r

	sess.Send(protocol.NewRoomCreated(roomID, game.RoleHost))
	return nil
}

// Join seats sess as guest in an existing room and notifies both players.
func (reg *Registry) Join(roomID string, sess *session.Session) error {
	if !roomIDPattern.MatchString(roomID) {
		return ErrInvalidRoomID
	}

	reg.mutex.RLock()
	r, exists := reg.rooms[roomID]
	reg.mutex.RUnlock()

	if !exists {
		return ErrRoomNotFound
	}
	return r.join(sess)
}

// Leave removes sess from its room, if any. The remaining player is told the
// opponent disconnected; an emptied room is closed and deleted. The leaver's
// identity is reset and acknowledged even when the room is already gone, so a
// session never stays bound to a dead room code.
func (reg *Registry) Leave(sess *session.Session) {
	if sess.RoomID == "" {
		return
	}

	reg.mutex.RLock()
	r, exists := reg.rooms[sess.RoomID]
	reg.mutex.RUnlock()

	if exists && r.removePlayer(sess) == 0 {
		reg.mutex.Lock()
		delete(reg.rooms, r.ID)
		reg.mutex.Unlock()
	}

	sess.ResetRoomState()
	sess.Send(protocol.NewRoomLeft())
}

// Get looks up a room by its code.
func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	r, exists := reg.rooms[roomID]
	return r, exists
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	return len(reg.rooms)
}

// RoomIDs lists the codes of all live rooms.
func (reg *Registry) RoomIDs() []string {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	ids := make([]string, 0, len(reg.rooms))
	for id := range reg.rooms {
		ids = append(ids, id)
	}
	return ids
}
