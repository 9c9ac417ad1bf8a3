// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/cakeserver/game"
	"github.com/wfunc/cakeserver/network"
)

// Session is the per-connection identity: which room the connection sits in,
// which seat it holds, its secret poison and whether it is its turn. It lives
// exactly as long as the connection and is reset whenever the player leaves a
// room.
type Session struct {
	ID         string
	Conn       network.Connection
	RoomID     string
	Role       game.Role
	Poison     *game.Position
	IsTurn     bool
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) GetID() string {
	return s.ID
}

// Send forwards a message to the client, best effort. The caller decides what
// to do with the error; a closed peer must never affect room state.
func (s *Session) Send(v any) error {
	s.Touch()
	return s.Conn.Send(v)
}

// Touch refreshes the last-activity timestamp.
func (s *Session) Touch() {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
}

// ResetRoomState clears all room membership and per-cycle game state.
func (s *Session) ResetRoomState() {
	s.RoomID = ""
	s.Role = ""
	s.Poison = nil
	s.IsTurn = false
}

// ResetCycleState clears only what a new game cycle resets: the poison pick
// and the turn flag. Membership and role survive.
func (s *Session) ResetCycleState() {
	s.Poison = nil
	s.IsTurn = false
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks all live sessions.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
