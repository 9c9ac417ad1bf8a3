package rpc

import (
	"fmt"
	"net"
	"net/rpc"

	"github.com/wfunc/cakeserver/logger"
	"github.com/wfunc/cakeserver/models"
	"github.com/wfunc/cakeserver/room"
	"github.com/wfunc/cakeserver/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes read-only operational queries over net/rpc: the live
// room table and the recorded match history.
type AdminService struct {
	registry *room.Registry
	matches  *services.MatchService
}

func NewAdminService(registry *room.Registry, matches *services.MatchService) *AdminService {
	return &AdminService{registry: registry, matches: matches}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	RoomIDs []string
}

func (a *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	reply.RoomIDs = a.registry.RoomIDs()
	return nil
}

type RoomSnapshotArgs struct {
	RoomID string
}

type RoomSnapshotReply struct {
	Snapshot models.RoomSnapshot
}

func (a *AdminService) RoomSnapshot(args *RoomSnapshotArgs, reply *RoomSnapshotReply) error {
	r, exists := a.registry.Get(args.RoomID)
	if !exists {
		return fmt.Errorf("room %s not found", args.RoomID)
	}
	reply.Snapshot = r.Snapshot()
	return nil
}

type MatchHistoryArgs struct {
	RoomID string
	Limit  int
}

type MatchHistoryReply struct {
	Records []models.MatchRecord
	Stats   *models.RoomStats
}

func (a *AdminService) MatchHistory(args *MatchHistoryArgs, reply *MatchHistoryReply) error {
	if a.matches == nil {
		return fmt.Errorf("match history is not enabled")
	}
	records, err := a.matches.History(args.RoomID, args.Limit)
	if err != nil {
		return err
	}
	stats, err := a.matches.Stats(args.RoomID)
	if err != nil {
		return err
	}
	reply.Records = records
	reply.Stats = stats
	return nil
}
