// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"time"

	"fmt"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/cakeserver/models"
)

// SQLStore is the database/sql Store implementation, for deployments that
// prefer plain SQL over GORM.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(host string, port int, user, password, dbname string) (*SQLStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &SQLStore{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS matches (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(4) NOT NULL,
            grid_size INT NOT NULL,
            policy VARCHAR(16) NOT NULL,
            winner VARCHAR(8) NOT NULL,
            loser VARCHAR(8) NOT NULL,
            poison_owner VARCHAR(8) NOT NULL,
            self_poison BOOLEAN NOT NULL,
            host_row INT NOT NULL,
            host_col INT NOT NULL,
            guest_row INT NOT NULL,
            guest_col INT NOT NULL,
            revealed_cells INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_matches_room_id ON matches(room_id);
        CREATE INDEX IF NOT EXISTS idx_matches_created_at ON matches(created_at);
    `)
	return err
}

func (s *SQLStore) SaveMatch(record *models.MatchRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
        INSERT INTO matches (
            room_id, grid_size, policy, winner, loser, poison_owner,
            self_poison, host_row, host_col, guest_row, guest_col, revealed_cells
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := s.db.ExecContext(ctx, query,
		record.RoomID, record.GridSize, record.Policy,
		record.Winner, record.Loser, record.PoisonOwner, record.SelfPoison,
		record.HostPoison[0], record.HostPoison[1],
		record.GuestPoison[0], record.GuestPoison[1],
		record.RevealedCells)
	return err
}

func (s *SQLStore) MatchHistory(roomID string, limit int) ([]models.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
        SELECT room_id, grid_size, policy, winner, loser, poison_owner,
               self_poison, host_row, host_col, guest_row, guest_col,
               revealed_cells, created_at
        FROM matches
        WHERE room_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := s.db.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.MatchRecord
	for rows.Next() {
		var r models.MatchRecord
		err := rows.Scan(&r.RoomID, &r.GridSize, &r.Policy, &r.Winner, &r.Loser,
			&r.PoisonOwner, &r.SelfPoison,
			&r.HostPoison[0], &r.HostPoison[1],
			&r.GuestPoison[0], &r.GuestPoison[1],
			&r.RevealedCells, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLStore) RoomStats(roomID string) (*models.RoomStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := &models.RoomStats{RoomID: roomID}
	query := `
        SELECT COUNT(*),
               COALESCE(SUM(CASE WHEN winner = 'host' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN winner = 'guest' THEN 1 ELSE 0 END), 0)
        FROM matches
        WHERE room_id = $1
    `
	err := s.db.QueryRowContext(ctx, query, roomID).
		Scan(&stats.TotalGames, &stats.HostWins, &stats.GuestWins)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
