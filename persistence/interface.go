// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/cakeserver/models"
)

// Store keeps the record of completed games. Live room state is never
// persisted; rooms do not survive a restart.
type Store interface {
	SaveMatch(record *models.MatchRecord) error
	MatchHistory(roomID string, limit int) ([]models.MatchRecord, error)
	RoomStats(roomID string) (*models.RoomStats, error)
	Close() error
}

var ErrRecordNotFound = fmt.Errorf("record not found")
