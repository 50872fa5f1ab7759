// Package server implements the relay server: TCP accept loop, room
// lifecycle, turn-ordered authoritative move validation, and disconnect
// recovery, per spec §4.2.
package server

import (
	"net"
	"time"

	"github.com/korjavin/gomoku-relay/board"
	"github.com/korjavin/gomoku-relay/protocol"
	"github.com/rs/zerolog/log"
)

// GameStore is the persistence hook invoked when a room's game ends; see
// package storage for the sqlite-backed implementation. Kept as an
// interface so tests can run the hub without a database.
type GameStore interface {
	SaveGame(roomID int32, roomName, hostName, guestName string, result protocol.Result, moveCount int)
}

// noopStore discards SaveGame calls; used when no GameStore is configured.
type noopStore struct{}

func (noopStore) SaveGame(int32, string, string, string, protocol.Result, int) {}

// Hub owns every client and room. It is read and written from exactly one
// goroutine (run), matching spec §5's single-threaded, mutex-free
// ownership model; per-client readLoop goroutines only ever send into
// incoming/unregisterCh, never touch Hub state directly.
type Hub struct {
	MaxClients int
	MaxRooms   int
	Store      GameStore

	clients map[*ClientSlot]bool
	rooms   map[int32]*Room
	nextID  int32

	registerCh   chan *ClientSlot
	unregisterCh chan *ClientSlot
	incoming     chan inbound
}

// NewHub constructs an empty Hub. maxClients/maxRooms of 0 fall back to the
// spec's compile-time defaults (20 clients, 10 rooms).
func NewHub(maxClients, maxRooms int) *Hub {
	if maxClients <= 0 {
		maxClients = 20
	}
	if maxRooms <= 0 {
		maxRooms = 10
	}
	return &Hub{
		MaxClients:   maxClients,
		MaxRooms:     maxRooms,
		Store:        noopStore{},
		clients:      make(map[*ClientSlot]bool),
		rooms:        make(map[int32]*Room),
		registerCh:   make(chan *ClientSlot),
		unregisterCh: make(chan *ClientSlot),
		incoming:     make(chan inbound, 256),
		nextID:       1,
	}
}

// Serve accepts connections on ln until it returns an error (typically
// because ln was closed), spawning one readLoop goroutine per accepted
// client and registering it with the hub. The hub goroutine is the one
// that enforces the client-slot capacity limit, since it is the sole owner
// of the client count (see Run).
func (h *Hub) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		client := newClientSlot(conn, h)
		h.registerCh <- client
		go client.readLoop()
	}
}

// unregister is called by a client's readLoop when its connection dies.
func (h *Hub) unregister(c *ClientSlot) {
	h.unregisterCh <- c
}

// Run is the single event loop: it owns all client/room state and is the
// only goroutine that ever sends on a client's socket, which is what gives
// spec §5's per-room message ordering guarantee.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.registerCh:
			// Capacity error: no free client slot. Close immediately with
			// no message, per spec §7; the client's readLoop will observe
			// the closed connection and unregister itself, a no-op since
			// it was never added to h.clients.
			if len(h.clients) >= h.MaxClients {
				client.Conn.Close()
				continue
			}
			h.clients[client] = true
			log.Info().Str("client", client.ID).Msg("client connected")

		case client := <-h.unregisterCh:
			if h.clients[client] {
				h.handleDisconnect(client)
				delete(h.clients, client)
			}

		case in := <-h.incoming:
			h.dispatch(in.client, in.msg)
		}
	}
}

func (h *Hub) dispatch(c *ClientSlot, msg *protocol.Message) {
	switch msg.Type {
	case protocol.Connect:
		h.handleConnect(c, msg)
	case protocol.RoomCreate:
		h.handleRoomCreate(c, msg)
	case protocol.RoomList:
		h.handleRoomList(c)
	case protocol.RoomJoin:
		h.handleRoomJoin(c, msg)
	case protocol.RoomLeave:
		h.handleRoomLeave(c)
	case protocol.Move:
		h.handleMove(c, msg)
	case protocol.Ping:
		c.send(&protocol.Message{Type: protocol.Pong})
	default:
		log.Warn().Str("client", c.ID).Int32("type", int32(msg.Type)).Msg("unexpected message in current state")
		h.sendError(c, "unexpected message")
	}
}

func (h *Hub) sendError(c *ClientSlot, text string) {
	c.send(&protocol.Message{Type: protocol.Error, Message: text})
}

func (h *Hub) handleConnect(c *ClientSlot, msg *protocol.Message) {
	c.Nickname = msg.Nickname
	if c.Nickname == "" {
		c.Nickname = "Player"
	}
	c.send(&protocol.Message{Type: protocol.ConnectAck, Nickname: c.Nickname})
}

func (h *Hub) handleRoomCreate(c *ClientSlot, msg *protocol.Message) {
	if c.InRoom {
		h.sendError(c, "already in a room")
		return
	}
	if len(h.rooms) >= h.MaxRooms {
		h.sendError(c, "no free room slot")
		return
	}

	id := h.nextID
	h.nextID++

	room := newRoom(id, msg.Nickname, c)
	h.rooms[id] = room

	c.InRoom = true
	c.RoomID = id

	c.send(&protocol.Message{Type: protocol.RoomCreateAck, X: id, Nickname: room.Name})
}

func (h *Hub) handleRoomList(c *ClientSlot) {
	resp := &protocol.Message{Type: protocol.RoomListResp}
	for _, room := range h.rooms {
		resp.Rooms = append(resp.Rooms, protocol.RoomInfo{
			RoomID:      room.ID,
			Name:        room.Name,
			HostName:    room.Host.Nickname,
			PlayerCount: int32(room.occupantCount()),
			InGame:      room.InGame,
		})
	}
	resp.Y = int32(len(resp.Rooms))
	c.send(resp)
}

func (h *Hub) handleRoomJoin(c *ClientSlot, msg *protocol.Message) {
	if c.InRoom {
		h.sendError(c, "already in a room")
		return
	}

	room, ok := h.rooms[msg.X]
	if !ok {
		c.send(&protocol.Message{Type: protocol.RoomNotFound, X: msg.X})
		return
	}
	if room.Guest != nil {
		c.send(&protocol.Message{Type: protocol.RoomFull, X: msg.X})
		return
	}

	room.Guest = c
	room.InGame = true
	c.InRoom = true
	c.RoomID = room.ID
	c.InGame = true
	c.Color = board.White
	c.Opponent = room.Host

	room.Host.InGame = true
	room.Host.Color = board.Black
	room.Host.Opponent = c
	room.StartedAt = time.Now()

	c.send(&protocol.Message{Type: protocol.RoomJoinAck, X: room.ID})

	room.Host.send(&protocol.Message{Type: protocol.GameStart, Player: int32(board.Black), Nickname: c.Nickname})
	c.send(&protocol.Message{Type: protocol.GameStart, Player: int32(board.White), Nickname: room.Host.Nickname})
}

func (h *Hub) handleRoomLeave(c *ClientSlot) {
	if !c.InRoom {
		h.sendError(c, "not in a room")
		return
	}
	room, ok := h.rooms[c.RoomID]
	if !ok {
		c.InRoom = false
		return
	}
	if room.InGame {
		h.sendError(c, "cannot leave an in-progress game")
		return
	}

	delete(h.rooms, room.ID)
	c.InRoom = false
	c.RoomID = 0
}
