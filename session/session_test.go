package session

import (
	"net"
	"testing"

	"github.com/wfunc/cakeserver/game"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent []any
}

func (m *MockConnection) Send(v any) error              { m.sent = append(m.sent, v); return nil }
func (m *MockConnection) ReadMessage() ([]byte, error)  { return nil, nil }
func (m *MockConnection) Close() error                  { return nil }
func (m *MockConnection) RemoteAddr() net.Addr          { return &net.TCPAddr{} }

func TestManager_AddGetRemove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("session1", &MockConnection{})

	manager.Add(sess)

	got, exists := manager.Get("session1")
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if got != sess {
		t.Error("Get should return the same session instance")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected count 1, got %d", manager.Count())
	}

	manager.Remove("session1")

	if _, exists := manager.Get("session1"); exists {
		t.Error("Get should not find a removed session")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected count 0 after removal, got %d", manager.Count())
	}
}

func TestSession_ResetRoomState(t *testing.T) {
	sess := NewSession("session2", &MockConnection{})
	sess.RoomID = "1234"
	sess.Role = game.RoleHost
	sess.Poison = &game.Position{1, 2}
	sess.IsTurn = true

	sess.ResetRoomState()

	if sess.RoomID != "" || sess.Role != "" || sess.Poison != nil || sess.IsTurn {
		t.Errorf("ResetRoomState must clear room, role, poison and turn: %+v", sess)
	}
}

func TestSession_ResetCycleState(t *testing.T) {
	sess := NewSession("session3", &MockConnection{})
	sess.RoomID = "1234"
	sess.Role = game.RoleGuest
	sess.Poison = &game.Position{0, 0}
	sess.IsTurn = true

	sess.ResetCycleState()

	if sess.Poison != nil || sess.IsTurn {
		t.Error("ResetCycleState must clear poison and turn")
	}
	if sess.RoomID != "1234" || sess.Role != game.RoleGuest {
		t.Error("ResetCycleState must keep membership and role")
	}
}

func TestSession_SendGoesThroughConnection(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("session4", conn)

	if err := sess.Send("hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0] != "hello" {
		t.Errorf("Expected the message to reach the connection, got %v", conn.sent)
	}
}
