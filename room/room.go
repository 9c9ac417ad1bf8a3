// room/room.go
package room

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wfunc/cakeserver/game"
	"github.com/wfunc/cakeserver/models"
	"github.com/wfunc/cakeserver/protocol"
	"github.com/wfunc/cakeserver/session"
	"github.com/wfunc/cakeserver/state"
)

// Room is one two-player game session, keyed by its 4-digit code. Every game
// operation runs as a Room method under opMutex, held for the whole handling
// of one message, so two messages touching the same room never interleave.
type Room struct {
	ID        string
	CreatedAt time.Time

	phase       *state.Machine
	players     []*session.Session // ordered, host first
	gridSize    int
	whoGoFirst  game.FirstPlayerPolicy
	poisons     map[game.Role]game.Position
	revealed    []game.Position
	revealedSet map[game.Position]struct{}
	currentTurn *game.Role // set iff phase == playing
	lastWinners []game.Role
	closed      bool // set when the last player leaves; the registry delists the room

	rng         *rand.Rand
	broadcaster Broadcaster
	recorder    Recorder

	// opMutex serializes operations end to end; playerMutex guards the
	// players slice for readers outside an operation (broadcaster, registry).
	opMutex     sync.Mutex
	playerMutex sync.RWMutex
}

func newRoom(id string, broadcaster Broadcaster, recorder Recorder) *Room {
	return &Room{
		ID:          id,
		CreatedAt:   time.Now(),
		phase:       state.NewMachine(),
		poisons:     make(map[game.Role]game.Position),
		revealedSet: make(map[game.Position]struct{}),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		broadcaster: broadcaster,
		recorder:    recorder,
	}
}

// Phase returns the room's current lifecycle phase.
func (r *Room) Phase() state.Phase {
	return r.phase.Current()
}

// Sessions returns a copy of the room's player sessions (thread-safe).
func (r *Room) Sessions() []*session.Session {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	sessions := make([]*session.Session, len(r.players))
	copy(sessions, r.players)
	return sessions
}

// PlayerCount returns the number of seated players.
func (r *Room) PlayerCount() int {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return len(r.players)
}

// CurrentTurn returns the role whose turn it is, or nil outside of play.
func (r *Room) CurrentTurn() *game.Role {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()
	if r.currentTurn == nil {
		return nil
	}
	turn := *r.currentTurn
	return &turn
}

// LastWinners returns a copy of the completed-game history, oldest first.
func (r *Room) LastWinners() []game.Role {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()
	return append([]game.Role(nil), r.lastWinners...)
}

// join seats sess as the guest. Called by the registry. The caller may hold a
// room pointer read before a concurrent leave emptied the room, so a closed
// room refuses the seat as if the lookup had already missed.
func (r *Room) join(sess *session.Session) error {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	if r.closed {
		return ErrRoomNotFound
	}
	if len(r.players) >= 2 {
		return ErrRoomFull
	}
	if !r.phase.Is(state.Waiting, state.SettingCakes) {
		return ErrGameInProgress
	}

	r.addPlayer(sess, game.RoleGuest)
	if r.phase.Is(state.Waiting) {
		r.phase.Transition(state.SettingCakes)
	}

	for _, p := range r.players {
		p.Send(protocol.NewPlayerJoined(r.ID, p.Role, string(r.phase.Current())))
	}
	return nil
}

func (r *Room) addPlayer(sess *session.Session, role game.Role) {
	r.playerMutex.Lock()
	r.players = append(r.players, sess)
	r.playerMutex.Unlock()
	sess.RoomID = r.ID
	sess.Role = role
}

// removePlayer unseats sess and notifies the remaining player, if any.
// It returns the number of players left.
func (r *Room) removePlayer(sess *session.Session) int {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	r.playerMutex.Lock()
	for i, p := range r.players {
		if p == sess {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	remaining := len(r.players)
	r.playerMutex.Unlock()

	if remaining > 0 {
		r.players[0].Send(protocol.NewOpponentDisconnected())
	} else {
		r.closed = true
	}
	return remaining
}

// SetCakes configures the grid and first-player policy and moves the room
// into the poison-choosing phase. Host only; all-or-nothing validation.
func (r *Room) SetCakes(sess *session.Session, gridSize int, whoGoFirst string) error {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	if sess.Role != game.RoleHost {
		return nil // stale or misbehaving client, drop
	}
	if !r.phase.Is(state.Waiting, state.SettingCakes) {
		return ErrGameInProgress
	}
	if len(r.players) < 2 {
		return ErrAwaitingSecondPlayer
	}
	if gridSize < game.MinGridSize || gridSize > game.MaxGridSize {
		return ErrInvalidGridSize
	}
	policy := game.FirstPlayerPolicy(whoGoFirst)
	if !policy.Valid() {
		return ErrInvalidFirstPlayerPolicy
	}

	r.gridSize = gridSize
	r.whoGoFirst = policy
	r.enterChoosingPoison()

	r.sendAll(protocol.NewGameStarted(r.gridSize, string(r.phase.Current())))
	return nil
}

// enterChoosingPoison starts a fresh cycle: poisons, revealed cells and the
// turn are wiped, on first start and on every restart alike.
func (r *Room) enterChoosingPoison() {
	r.phase.Transition(state.ChoosingPoison)
	r.poisons = make(map[game.Role]game.Position)
	r.revealed = nil
	r.revealedSet = make(map[game.Position]struct{})
	r.currentTurn = nil
	for _, p := range r.players {
		p.ResetCycleState()
	}
}

// ChoosePoison records sess's secret poison cell. When both are in, play
// begins and the first player is picked by the room's policy.
func (r *Room) ChoosePoison(sess *session.Session, pos game.Position) error {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	if !r.phase.Is(state.ChoosingPoison) {
		return nil
	}
	if !pos.InBounds(r.gridSize) {
		return ErrOutOfBounds
	}
	if sess.Poison != nil {
		return ErrPoisonAlreadyChosen
	}

	r.poisons[sess.Role] = pos
	chosen := pos
	sess.Poison = &chosen

	sess.Send(protocol.NewPoisonChosen(pos))
	if opponent := r.playerByRole(sess.Role.Opponent()); opponent != nil {
		opponent.Send(protocol.NewOpponentPoisonChosen(sess.Role))
	}

	if len(r.players) == 2 && len(r.poisons) == 2 {
		r.beginPlay()
	}
	return nil
}

func (r *Room) beginPlay() {
	r.phase.Transition(state.Playing)
	first := game.PickFirst(r.whoGoFirst, r.lastWinners, r.rng)
	r.currentTurn = &first

	for _, p := range r.players {
		p.IsTurn = p.Role == first
		p.Send(protocol.NewAllPoisonsChosen(*p.Poison, string(r.phase.Current()), p.IsTurn, first))
	}
}

// SelectCake reveals one cell for the player whose turn it is. Revealing any
// poison, their own included, makes the revealer the loser.
func (r *Room) SelectCake(sess *session.Session, pos game.Position) error {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	if !r.phase.Is(state.Playing) {
		return nil
	}
	if r.currentTurn == nil || *r.currentTurn != sess.Role {
		return ErrNotYourTurn
	}
	if !pos.InBounds(r.gridSize) {
		return ErrOutOfBounds
	}
	if _, dup := r.revealedSet[pos]; dup {
		return ErrCellAlreadyRevealed
	}

	r.revealedSet[pos] = struct{}{}
	r.revealed = append(r.revealed, pos)

	outcome := game.ResolveReveal(sess.Role, pos, r.poisons)
	if outcome.GameOver {
		r.finishGame(sess, pos, outcome)
	} else {
		r.flipTurn(sess, pos, outcome.NextTurn)
	}
	return nil
}

func (r *Room) flipTurn(by *session.Session, pos game.Position, next game.Role) {
	r.currentTurn = &next
	revealed := append([]game.Position(nil), r.revealed...)
	for _, p := range r.players {
		p.IsTurn = p.Role == next
		p.Send(protocol.NewCakeSelected(pos, by.Role, p.IsTurn, next, revealed))
	}
}

func (r *Room) finishGame(revealer *session.Session, pos game.Position, outcome game.Reveal) {
	r.phase.Transition(state.Finished)
	r.currentTurn = nil
	r.lastWinners = append(r.lastWinners, outcome.Winner)

	history := append([]game.Role(nil), r.lastWinners...)
	for _, p := range r.players {
		p.IsTurn = false
		msg := protocol.GameOver{
			Type:             protocol.TypeGameOver,
			Winner:           outcome.Winner,
			Loser:            outcome.Loser,
			LastWinners:      history,
			SelectedPosition: pos,
			PoisonOwner:      outcome.PoisonOwner,
			IsSelfPoison:     outcome.SelfPoison == (p.Role == revealer.Role),
			YourRole:         p.Role,
			YourPoison:       p.Poison,
		}
		if opponentPoison, ok := r.poisons[p.Role.Opponent()]; ok {
			theirs := opponentPoison
			msg.OpponentPoison = &theirs
		}
		p.Send(msg)
	}

	if r.recorder != nil {
		record := models.MatchRecord{
			RoomID:        r.ID,
			GridSize:      r.gridSize,
			Policy:        string(r.whoGoFirst),
			Winner:        string(outcome.Winner),
			Loser:         string(outcome.Loser),
			PoisonOwner:   string(outcome.PoisonOwner),
			SelfPoison:    outcome.SelfPoison,
			HostPoison:    [2]int(r.poisons[game.RoleHost]),
			GuestPoison:   [2]int(r.poisons[game.RoleGuest]),
			RevealedCells: len(r.revealed),
			CreatedAt:     time.Now(),
		}
		// Recording is best effort and must never block or fail the game.
		go r.recorder.RecordMatch(record)
	}
}

// Restart begins a new cycle on the same grid. Only the host may restart; a
// guest's attempt is forwarded to the host as a request.
func (r *Room) Restart(sess *session.Session) error {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	if sess.Role != game.RoleHost {
		if host := r.playerByRole(game.RoleHost); host != nil {
			host.Send(protocol.NewRequestRestartGame(sess.Role))
		}
		return ErrNotHost
	}
	if !r.phase.Is(state.Finished) {
		return nil
	}

	r.enterChoosingPoison()
	r.sendAll(protocol.NewGameRestarted(r.gridSize, string(r.phase.Current())))
	return nil
}

// Snapshot returns a read-only view for the admin RPC.
func (r *Room) Snapshot() models.RoomSnapshot {
	r.opMutex.Lock()
	defer r.opMutex.Unlock()

	snap := models.RoomSnapshot{
		RoomID:      r.ID,
		Phase:       string(r.phase.Current()),
		GridSize:    r.gridSize,
		Policy:      string(r.whoGoFirst),
		PlayerCount: len(r.players),
		CreatedAt:   r.CreatedAt,
	}
	for _, p := range r.players {
		snap.Roles = append(snap.Roles, string(p.Role))
	}
	for _, w := range r.lastWinners {
		snap.LastWinners = append(snap.LastWinners, string(w))
	}
	return snap
}

func (r *Room) playerByRole(role game.Role) *session.Session {
	for _, p := range r.players {
		if p.Role == role {
			return p
		}
	}
	return nil
}

// sendAll delivers one identical message to both players. It goes through the
// broadcaster when one is wired so delivery failures are handled uniformly.
func (r *Room) sendAll(v any) {
	if r.broadcaster != nil {
		r.broadcaster.BroadcastToRoom(r.ID, v)
		return
	}
	for _, p := range r.players {
		p.Send(v)
	}
}
