package server

import (
	"github.com/korjavin/gomoku-relay/board"
	"github.com/korjavin/gomoku-relay/protocol"
	"github.com/rs/zerolog/log"
)

// handleMove authoritatively validates and applies a move, per spec §4.2.
func (h *Hub) handleMove(c *ClientSlot, msg *protocol.Message) {
	if !c.InGame {
		h.sendError(c, "not in a game")
		return
	}
	room, ok := h.rooms[c.RoomID]
	if !ok || !room.InGame {
		h.sendError(c, "no active game")
		return
	}

	if room.CurrentTurn != c.Color {
		h.sendError(c, "opponent's turn")
		return
	}

	row, col := int(msg.Y), int(msg.X)
	if !board.InBounds(row, col) {
		h.sendError(c, "bad coord")
		return
	}
	if room.Board.At(row, col) != board.Empty {
		h.sendError(c, "occupied")
		return
	}

	room.Board.Set(row, col, c.Color)
	room.MoveCount++

	c.send(&protocol.Message{Type: protocol.MoveAck, X: msg.X, Y: msg.Y, Player: int32(c.Color)})
	c.Opponent.send(&protocol.Message{Type: protocol.Move, X: msg.X, Y: msg.Y, Player: int32(c.Color)})

	switch {
	case board.CheckWinAt(room.Board, row, col, c.Color):
		result := protocol.ResultBlackWin
		if c.Color == board.White {
			result = protocol.ResultWhiteWin
		}
		h.endGame(room, result)

	case room.MoveCount >= board.MaxMoves:
		h.endGame(room, protocol.ResultDraw)

	default:
		room.CurrentTurn = room.CurrentTurn.Other()
	}
}

// endGame notifies both occupants, persists the result, and destroys the
// room, per spec §4.2's InGame -> destroyed transitions.
func (h *Hub) endGame(room *Room, result protocol.Result) {
	end := &protocol.Message{Type: protocol.GameEnd, Result: result}
	room.Host.send(end)
	if room.Guest != nil {
		room.Guest.send(end)
	}

	guestName := ""
	if room.Guest != nil {
		guestName = room.Guest.Nickname
	}
	h.Store.SaveGame(room.ID, room.Name, room.Host.Nickname, guestName, result, room.MoveCount)

	h.destroyRoom(room)
}

func (h *Hub) destroyRoom(room *Room) {
	delete(h.rooms, room.ID)
	if room.Host != nil {
		room.Host.InRoom = false
		room.Host.InGame = false
		room.Host.RoomID = 0
		room.Host.Opponent = nil
	}
	if room.Guest != nil {
		room.Guest.InRoom = false
		room.Guest.InGame = false
		room.Guest.RoomID = 0
		room.Guest.Opponent = nil
	}
}

// handleDisconnect fires on socket loss, whatever state the client was in.
// A waiting room's host departing destroys it; an in-game occupant's
// departure notifies the survivor with OpponentLeft and destroys the room,
// per spec §3/§4.2/§7.
func (h *Hub) handleDisconnect(c *ClientSlot) {
	log.Info().Str("client", c.ID).Msg("client disconnected")

	if !c.InRoom {
		return
	}
	room, ok := h.rooms[c.RoomID]
	if !ok {
		return
	}

	if room.InGame {
		survivor := room.Host
		if survivor == c {
			survivor = room.Guest
		}
		if survivor != nil {
			survivor.send(&protocol.Message{Type: protocol.OpponentLeft})
		}
		h.Store.SaveGame(room.ID, room.Name, nameOrEmpty(room.Host), nameOrEmpty(room.Guest), protocol.ResultDisconnect, room.MoveCount)
		h.destroyRoom(room)
		return
	}

	// Waiting room: only the host can be in it alone.
	h.destroyRoom(room)
}

func nameOrEmpty(c *ClientSlot) string {
	if c == nil {
		return ""
	}
	return c.Nickname
}
