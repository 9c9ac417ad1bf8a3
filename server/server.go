package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/cakeserver/broadcast"
	"github.com/wfunc/cakeserver/config"
	"github.com/wfunc/cakeserver/dispatch"
	"github.com/wfunc/cakeserver/logger"
	"github.com/wfunc/cakeserver/monitor"
	"github.com/wfunc/cakeserver/network"
	"github.com/wfunc/cakeserver/persistence"
	"github.com/wfunc/cakeserver/room"
	cakeserver_rpc "github.com/wfunc/cakeserver/rpc"
	"github.com/wfunc/cakeserver/services"
	"github.com/wfunc/cakeserver/session"
	"github.com/wfunc/cakeserver/timer"
)

// A connection that stays silent this long, without even a heartbeat, is
// treated as dead and reaped through the normal disconnect path.
const idleTimeout = 10 * time.Minute

// GameServer ties the transport to the game core: it upgrades websocket
// connections, runs one read loop per connection and hands every frame to the
// dispatcher. It also serves the static web client, the metrics endpoint and
// the admin RPC.
type GameServer struct {
	httpAddr       string
	staticDir      string
	upgrader       websocket.Upgrader
	registry       *room.Registry
	sessionManager *session.Manager
	dispatcher     *dispatch.Dispatcher
	broadcaster    broadcast.Broadcaster
	matchService   *services.MatchService
	mon            *monitor.Monitor
	timers         *timer.Manager
	rpcServer      *cakeserver_rpc.Server
	metricsAddr    string
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.Store) *GameServer {
	s := &GameServer{
		httpAddr:       cfg.Server.HTTPAddress,
		staticDir:      cfg.Server.StaticDir,
		metricsAddr:    cfg.Server.MetricsAddress,
		registry:       room.NewRegistry(),
		sessionManager: session.NewManager(),
		timers:         timer.NewManager(),
		mon:            monitor.NewMonitor("cakeserver"),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.registry)
	s.registry.SetBroadcaster(s.broadcaster)

	if store != nil {
		s.matchService = services.NewMatchService(store)
		s.registry.SetRecorder(s.matchService)
	}

	rpcServer, err := cakeserver_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(cakeserver_rpc.NewAdminService(s.registry, s.matchService))

	s.dispatcher = dispatch.NewDispatcher(s.registry, s.mon)

	// Keep the gauges in step with the registry and session table.
	s.timers.Schedule(0, 5*time.Second, func() {
		s.mon.SetActiveRooms(s.registry.Count())
		s.mon.SetOnlinePlayers(s.sessionManager.Count())
	})

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.mon.StartServer(s.metricsAddr)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	logger.Log.Infof("Game server listening on %s", s.httpAddr)
	return http.ListenAndServe(s.httpAddr, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.mon.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		// A dropped connection is an implicit leave_room for that player.
		s.dispatcher.Disconnect(sess)
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			wsConn.SetReadDeadline(idleTimeout)
			data, err := wsConn.ReadMessage()
			if err != nil {
				return
			}
			s.dispatcher.Dispatch(sess, data)
		}
	}
}
