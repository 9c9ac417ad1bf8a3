// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormMatch is the persisted form of a MatchRecord.
type GormMatch struct {
	gorm.Model
	RoomID        string `gorm:"index;not null"`
	GridSize      int    `gorm:"not null"`
	Policy        string `gorm:"not null"`
	Winner        string `gorm:"not null"`
	Loser         string `gorm:"not null"`
	PoisonOwner   string `gorm:"not null"`
	SelfPoison    bool   `gorm:"not null"`
	HostRow       int
	HostCol       int
	GuestRow      int
	GuestCol      int
	RevealedCells int `gorm:"default:0"`
}
