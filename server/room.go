package server

import (
	"time"

	"github.com/korjavin/gomoku-relay/board"
)

// Room pairs two clients with their own board and turn counter, per
// spec §3. It is destroyed at game end, last-occupant departure, or either
// party's disconnect.
type Room struct {
	ID     int32
	Name   string
	Host   *ClientSlot
	Guest  *ClientSlot
	InGame bool

	Board       *board.Board
	CurrentTurn board.Color
	MoveCount   int

	StartedAt time.Time
}

func newRoom(id int32, name string, host *ClientSlot) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Host:        host,
		Board:       board.New(),
		CurrentTurn: board.Black,
	}
}

// occupantCount mirrors the server invariant in spec §8.5: one per present
// host/guest.
func (r *Room) occupantCount() int {
	n := 0
	if r.Host != nil {
		n++
	}
	if r.Guest != nil {
		n++
	}
	return n
}
