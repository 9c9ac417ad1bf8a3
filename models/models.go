// models/models.go
package models

import (
	"time"
)

// MatchRecord captures one completed game cycle for persistence and stats.
type MatchRecord struct {
	RoomID        string    `json:"room_id"`
	GridSize      int       `json:"grid_size"`
	Policy        string    `json:"policy"`
	Winner        string    `json:"winner"`
	Loser         string    `json:"loser"`
	PoisonOwner   string    `json:"poison_owner"`
	SelfPoison    bool      `json:"self_poison"`
	HostPoison    [2]int    `json:"host_poison"`
	GuestPoison   [2]int    `json:"guest_poison"`
	RevealedCells int       `json:"revealed_cells"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoomSnapshot is a read-only view of a live room, served over the admin RPC.
type RoomSnapshot struct {
	RoomID      string    `json:"room_id"`
	Phase       string    `json:"phase"`
	GridSize    int       `json:"grid_size"`
	Policy      string    `json:"policy"`
	PlayerCount int       `json:"player_count"`
	Roles       []string  `json:"roles"`
	LastWinners []string  `json:"last_winners"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoomStats summarizes the recorded history of one room code.
type RoomStats struct {
	RoomID     string `json:"room_id"`
	TotalGames int    `json:"total_games"`
	HostWins   int    `json:"host_wins"`
	GuestWins  int    `json:"guest_wins"`
}
