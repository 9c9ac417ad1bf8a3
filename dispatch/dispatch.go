// dispatch/dispatch.go
package dispatch

import (
	"time"

	"github.com/wfunc/cakeserver/logger"
	"github.com/wfunc/cakeserver/monitor"
	"github.com/wfunc/cakeserver/protocol"
	"github.com/wfunc/cakeserver/room"
	"github.com/wfunc/cakeserver/session"
	"github.com/wfunc/cakeserver/state"
)

// Dispatcher routes each inbound frame to the operation matching its type,
// authorizing through the sender's current room membership. Validation
// failures go back to the offending sender only; malformed input is logged
// and dropped without a reply.
type Dispatcher struct {
	registry *room.Registry
	metrics  *monitor.Monitor
}

func NewDispatcher(registry *room.Registry, metrics *monitor.Monitor) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		metrics:  metrics,
	}
}

// Dispatch handles one raw frame from sess to completion.
func (d *Dispatcher) Dispatch(sess *session.Session, raw []byte) {
	start := time.Now()
	if d.metrics != nil {
		d.metrics.IncMessagesReceived()
	}

	msg, err := protocol.Decode(raw)
	if err != nil {
		logger.Log.Warnf("Dropping malformed message from session %s: %v", sess.GetID(), err)
		return
	}

	switch m := msg.(type) {
	case *protocol.Ping:
		sess.Touch()
	case *protocol.CreateRoom:
		d.reply(sess, d.registry.Create(m.RoomID, sess))
	case *protocol.JoinRoom:
		d.reply(sess, d.registry.Join(m.RoomID, sess))
	case *protocol.SetCakes:
		if r, ok := d.roomOf(sess); ok {
			d.reply(sess, r.SetCakes(sess, m.GridSize, m.WhoGoFirst))
		}
	case *protocol.ChoosePoison:
		if m.Position == nil {
			logger.Log.Warnf("Dropping choose_poison without position from session %s", sess.GetID())
			break
		}
		if r, ok := d.roomOf(sess); ok {
			d.reply(sess, r.ChoosePoison(sess, *m.Position))
		}
	case *protocol.SelectCake:
		if m.Position == nil {
			logger.Log.Warnf("Dropping select_cake without position from session %s", sess.GetID())
			break
		}
		if r, ok := d.roomOf(sess); ok {
			err := r.SelectCake(sess, *m.Position)
			d.reply(sess, err)
			if err == nil && r.Phase() == state.Finished && d.metrics != nil {
				d.metrics.IncGamesCompleted()
			}
		}
	case *protocol.RestartGame:
		if r, ok := d.roomOf(sess); ok {
			d.reply(sess, r.Restart(sess))
		}
	case *protocol.LeaveRoom:
		d.registry.Leave(sess)
	}

	if d.metrics != nil {
		d.metrics.ObserveMessageLatency(time.Since(start))
	}
}

// Disconnect is the transport telling us the connection is gone; it behaves
// like an implicit leave_room.
func (d *Dispatcher) Disconnect(sess *session.Session) {
	d.registry.Leave(sess)
}

// roomOf resolves the sender's room. A sender without a live room is a stale
// client, not a user mistake, so the caller drops the message silently.
func (d *Dispatcher) roomOf(sess *session.Session) (*room.Room, bool) {
	if sess.RoomID == "" {
		return nil, false
	}
	return d.registry.Get(sess.RoomID)
}

func (d *Dispatcher) reply(sess *session.Session, err error) {
	if err == nil {
		return
	}
	sess.Send(protocol.NewError(err.Error()))
}
