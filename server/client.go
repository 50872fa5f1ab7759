package server

import (
	"net"

	"github.com/google/uuid"
	"github.com/korjavin/gomoku-relay/board"
	"github.com/korjavin/gomoku-relay/protocol"
	"github.com/rs/zerolog/log"
)

// ClientSlot is one connected socket's identity and session state, per
// spec §3's ClientSlot. It is owned exclusively by the Hub goroutine once
// registered; the only other goroutine touching it is its own readLoop,
// which never mutates session fields, only forwards decoded frames.
type ClientSlot struct {
	ID       string
	Conn     net.Conn
	Nickname string

	InRoom bool
	RoomID int32

	InGame   bool
	Color    board.Color
	Opponent *ClientSlot

	hub *Hub
}

func newClientSlot(conn net.Conn, hub *Hub) *ClientSlot {
	return &ClientSlot{
		ID:   uuid.NewString(),
		Conn: conn,
		hub:  hub,
	}
}

// inbound pairs a decoded message with the client it arrived from, the unit
// of work the Hub's single goroutine consumes.
type inbound struct {
	client *ClientSlot
	msg    *protocol.Message
}

// readLoop blocks reading framed messages off the socket and forwards each
// to the hub. It is the only goroutine besides the hub's run loop that
// touches a ClientSlot's connection, and only to read from it — spec §5
// requires the mover to observe its own MoveAck before the peer's relayed
// Move, which holds because all writes happen from the single hub
// goroutine in event-processing order.
func (c *ClientSlot) readLoop() {
	defer c.hub.unregister(c)

	for {
		msg, err := protocol.ReadMessage(c.Conn)
		if err != nil {
			log.Debug().Str("client", c.ID).Err(err).Msg("client read failed, disconnecting")
			return
		}
		c.hub.incoming <- inbound{client: c, msg: msg}
	}
}

// send writes msg synchronously on the hub goroutine. Run only ever calls
// this from its own loop so that sends to a room's two clients stay in the
// relative order the hub processed the events that produced them.
func (c *ClientSlot) send(msg *protocol.Message) {
	if err := protocol.WriteMessage(c.Conn, msg); err != nil {
		log.Debug().Str("client", c.ID).Err(err).Msg("write failed")
	}
}
