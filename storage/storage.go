// Package storage persists an append-only log of finished games to sqlite,
// adapted from korjavin-virusgame's backend/storage.go. Ranking and
// save-slot files are an explicit spec non-goal; this is a plain audit log
// of completed matches, not a ranking system.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/korjavin/gomoku-relay/protocol"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Store wraps a sqlite database recording one row per finished game.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) the parent directory and the games table, and
// returns a ready Store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS games (
		room_id INTEGER PRIMARY KEY,
		room_name TEXT,
		host_name TEXT,
		guest_name TEXT,
		result INTEGER,
		move_count INTEGER,
		ended_at DATETIME
	);`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame records a finished game. Matches the server.GameStore interface.
// Runs the insert in a goroutine, the way the teacher's SaveGame does, so a
// slow disk never stalls the hub's single event loop.
func (s *Store) SaveGame(roomID int32, roomName, hostName, guestName string, result protocol.Result, moveCount int) {
	if s == nil || s.db == nil {
		return
	}

	endedAt := time.Now()
	go func() {
		const insertSQL = `
		INSERT INTO games (room_id, room_name, host_name, guest_name, result, move_count, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(room_id) DO UPDATE SET
			result = excluded.result,
			move_count = excluded.move_count,
			ended_at = excluded.ended_at
		`
		if _, err := s.db.Exec(insertSQL, roomID, roomName, hostName, guestName, int(result), moveCount, endedAt); err != nil {
			log.Error().Err(err).Int32("roomId", roomID).Msg("failed to save game")
		}
	}()
}
