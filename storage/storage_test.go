package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/korjavin/gomoku-relay/protocol"
	"github.com/stretchr/testify/require"
)

func TestSaveGamePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	store.SaveGame(1, "room1", "H", "G", protocol.ResultBlackWin, 42)

	require.Eventually(t, func() bool {
		var count int
		row := store.db.QueryRow("SELECT COUNT(*) FROM games WHERE room_id = 1")
		if err := row.Scan(&count); err != nil {
			return false
		}
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}
