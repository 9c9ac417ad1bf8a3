// persistence/gorm_postgresql.go
package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/cakeserver/models"
)

// GormStore is the GORM-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(host string, port int, user, password, dbname string) (*GormStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	dbLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormMatch{}); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) SaveMatch(record *models.MatchRecord) error {
	match := models.GormMatch{
		RoomID:        record.RoomID,
		GridSize:      record.GridSize,
		Policy:        record.Policy,
		Winner:        record.Winner,
		Loser:         record.Loser,
		PoisonOwner:   record.PoisonOwner,
		SelfPoison:    record.SelfPoison,
		HostRow:       record.HostPoison[0],
		HostCol:       record.HostPoison[1],
		GuestRow:      record.GuestPoison[0],
		GuestCol:      record.GuestPoison[1],
		RevealedCells: record.RevealedCells,
	}
	return s.db.Create(&match).Error
}

func (s *GormStore) MatchHistory(roomID string, limit int) ([]models.MatchRecord, error) {
	var matches []models.GormMatch
	err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	records := make([]models.MatchRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, models.MatchRecord{
			RoomID:        m.RoomID,
			GridSize:      m.GridSize,
			Policy:        m.Policy,
			Winner:        m.Winner,
			Loser:         m.Loser,
			PoisonOwner:   m.PoisonOwner,
			SelfPoison:    m.SelfPoison,
			HostPoison:    [2]int{m.HostRow, m.HostCol},
			GuestPoison:   [2]int{m.GuestRow, m.GuestCol},
			RevealedCells: m.RevealedCells,
			CreatedAt:     m.CreatedAt,
		})
	}
	return records, nil
}

// RoomStats tallies a room's history inside one transaction so the counts are
// consistent with each other.
func (s *GormStore) RoomStats(roomID string) (*models.RoomStats, error) {
	stats := &models.RoomStats{RoomID: roomID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total, hostWins int64
		if err := tx.Model(&models.GormMatch{}).Where("room_id = ?", roomID).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.GormMatch{}).
			Where("room_id = ? AND winner = ?", roomID, "host").
			Count(&hostWins).Error; err != nil {
			return err
		}
		stats.TotalGames = int(total)
		stats.HostWins = int(hostWins)
		stats.GuestWins = int(total - hostWins)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
