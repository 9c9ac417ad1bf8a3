package dispatch

import (
	"net"
	"os"
	"sync"
	"testing"

	"github.com/wfunc/cakeserver/game"
	"github.com/wfunc/cakeserver/logger"
	"github.com/wfunc/cakeserver/protocol"
	"github.com/wfunc/cakeserver/room"
	"github.com/wfunc/cakeserver/session"
	"github.com/wfunc/cakeserver/state"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakeConn struct {
	mu   sync.Mutex
	sent []any
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) ReadMessage() ([]byte, error) { return nil, nil }
func (c *fakeConn) Close() error                 { return nil }
func (c *fakeConn) RemoteAddr() net.Addr         { return &net.TCPAddr{} }

func (c *fakeConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

func (c *fakeConn) last() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return nil
	}
	return c.sent[len(c.sent)-1]
}

func newDispatcher() *Dispatcher {
	return NewDispatcher(room.NewRegistry(), nil)
}

func newTestSession(id string) (*session.Session, *fakeConn) {
	conn := &fakeConn{}
	return session.NewSession(id, conn), conn
}

func TestDispatch_CreateRoom(t *testing.T) {
	d := newDispatcher()
	sess, conn := newTestSession("s1")

	d.Dispatch(sess, []byte(`{"type":"create_room","roomId":"1234"}`))

	created, ok := conn.last().(protocol.RoomCreated)
	if !ok || created.RoomID != "1234" {
		t.Fatalf("Expected room_created, got %v", conn.last())
	}
	if sess.Role != game.RoleHost {
		t.Errorf("Expected the creator seated as host, got %s", sess.Role)
	}
}

func TestDispatch_ErrorsGoToSenderOnly(t *testing.T) {
	d := newDispatcher()
	host, hostConn := newTestSession("host")
	guest, guestConn := newTestSession("guest")

	d.Dispatch(host, []byte(`{"type":"create_room","roomId":"1234"}`))
	d.Dispatch(guest, []byte(`{"type":"join_room","roomId":"1234"}`))

	hostSent := len(hostConn.messages())
	d.Dispatch(guest, []byte(`{"type":"create_room","roomId":"1234"}`))

	errMsg, ok := guestConn.last().(protocol.Error)
	if !ok {
		t.Fatalf("Expected an error reply to the offender, got %v", guestConn.last())
	}
	if errMsg.Message != room.ErrRoomExists.Error() {
		t.Errorf("Unexpected error message: %q", errMsg.Message)
	}
	if len(hostConn.messages()) != hostSent {
		t.Error("The other player must not see the offender's error")
	}
}

func TestDispatch_MalformedIsDroppedSilently(t *testing.T) {
	d := newDispatcher()
	sess, conn := newTestSession("s1")

	for _, raw := range []string{
		`garbage`,
		`{"type":"warp_ten"}`,
		`{"type":"choose_poison"}`,
		`{"type":"select_cake","position":"b2"}`,
	} {
		d.Dispatch(sess, []byte(raw))
	}

	if n := len(conn.messages()); n != 0 {
		t.Errorf("Malformed input must produce no reply, got %d messages", n)
	}
}

func TestDispatch_RoomlessActionsAreSilentlyDropped(t *testing.T) {
	d := newDispatcher()
	sess, conn := newTestSession("s1")

	d.Dispatch(sess, []byte(`{"type":"set_cakes","gridSize":3,"who_go_first":"random"}`))
	d.Dispatch(sess, []byte(`{"type":"select_cake","position":[0,0]}`))
	d.Dispatch(sess, []byte(`{"type":"restart_game"}`))
	d.Dispatch(sess, []byte(`{"type":"leave_room"}`))

	if n := len(conn.messages()); n != 0 {
		t.Errorf("Actions without a room are stale-client noise, expected no reply, got %d", n)
	}
}

func TestDispatch_FullGameOverWire(t *testing.T) {
	d := newDispatcher()
	host, hostConn := newTestSession("host")
	guest, guestConn := newTestSession("guest")

	d.Dispatch(host, []byte(`{"type":"create_room","roomId":"4242"}`))
	d.Dispatch(guest, []byte(`{"type":"join_room","roomId":"4242"}`))
	d.Dispatch(host, []byte(`{"type":"set_cakes","gridSize":3,"who_go_first":"host"}`))
	d.Dispatch(host, []byte(`{"type":"choose_poison","position":[0,0]}`))
	d.Dispatch(guest, []byte(`{"type":"choose_poison","position":[2,2]}`))

	started, ok := hostConn.last().(protocol.AllPoisonsChosen)
	if !ok || started.CurrentPlayer != game.RoleHost {
		t.Fatalf("Expected play to start with the host, got %v", hostConn.last())
	}

	d.Dispatch(host, []byte(`{"type":"select_cake","position":[1,1]}`))
	d.Dispatch(guest, []byte(`{"type":"select_cake","position":[0,0]}`))

	over, ok := guestConn.last().(protocol.GameOver)
	if !ok {
		t.Fatalf("Expected game_over, got %v", guestConn.last())
	}
	if over.Winner != game.RoleHost || over.Loser != game.RoleGuest {
		t.Errorf("Guest revealed the host's poison and lost: %+v", over)
	}
}

func TestDispatch_DisconnectActsAsLeave(t *testing.T) {
	d := newDispatcher()
	host, _ := newTestSession("host")
	guest, guestConn := newTestSession("guest")

	d.Dispatch(host, []byte(`{"type":"create_room","roomId":"7777"}`))
	d.Dispatch(guest, []byte(`{"type":"join_room","roomId":"7777"}`))

	d.Disconnect(host)

	var sawDisconnected bool
	for _, msg := range guestConn.messages() {
		if _, ok := msg.(protocol.OpponentDisconnected); ok {
			sawDisconnected = true
		}
	}
	if !sawDisconnected {
		t.Error("The remaining player should learn about the disconnect")
	}

	r, exists := d.registry.Get("7777")
	if !exists {
		t.Fatal("The room should survive with one player")
	}
	if r.Phase() != state.SettingCakes {
		t.Errorf("The unaffected player stays in the current phase, got %s", r.Phase())
	}

	d.Disconnect(guest)
	if _, exists := d.registry.Get("7777"); exists {
		t.Error("The room should be deleted after the last disconnect")
	}
}

func TestDispatch_NotYourTurnError(t *testing.T) {
	d := newDispatcher()
	host, _ := newTestSession("host")
	guest, guestConn := newTestSession("guest")

	d.Dispatch(host, []byte(`{"type":"create_room","roomId":"5555"}`))
	d.Dispatch(guest, []byte(`{"type":"join_room","roomId":"5555"}`))
	d.Dispatch(host, []byte(`{"type":"set_cakes","gridSize":3,"who_go_first":"host"}`))
	d.Dispatch(host, []byte(`{"type":"choose_poison","position":[0,0]}`))
	d.Dispatch(guest, []byte(`{"type":"choose_poison","position":[2,2]}`))

	d.Dispatch(guest, []byte(`{"type":"select_cake","position":[1,1]}`))

	errMsg, ok := guestConn.last().(protocol.Error)
	if !ok || errMsg.Message != room.ErrNotYourTurn.Error() {
		t.Errorf("Expected a not-your-turn error, got %v", guestConn.last())
	}
}
