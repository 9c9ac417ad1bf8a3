// services/match_service.go
package services

import (
	"github.com/wfunc/cakeserver/logger"
	"github.com/wfunc/cakeserver/models"
	"github.com/wfunc/cakeserver/persistence"
)

// MatchService records finished games and answers history queries. It
// implements room.Recorder; rooms call RecordMatch from a goroutine, so a
// slow or failing database never touches game state.
type MatchService struct {
	store persistence.Store
}

func NewMatchService(store persistence.Store) *MatchService {
	return &MatchService{store: store}
}

// RecordMatch persists one completed game, best effort.
func (s *MatchService) RecordMatch(record models.MatchRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveMatch(&record); err != nil {
		logger.Log.Errorf("Failed to record match for room %s: %v", record.RoomID, err)
		return
	}
	logger.Log.Infof("Recorded match for room %s: %s beat %s", record.RoomID, record.Winner, record.Loser)
}

// History returns the most recent matches played under a room code.
func (s *MatchService) History(roomID string, limit int) ([]models.MatchRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.MatchHistory(roomID, limit)
}

// Stats returns win/loss tallies for a room code.
func (s *MatchService) Stats(roomID string) (*models.RoomStats, error) {
	if s.store == nil {
		return &models.RoomStats{RoomID: roomID}, nil
	}
	return s.store.RoomStats(roomID)
}
