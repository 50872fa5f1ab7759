package server

import (
	"net"
	"testing"
	"time"

	"github.com/korjavin/gomoku-relay/protocol"
	"github.com/stretchr/testify/require"
)

func startTestHub(t *testing.T) (*Hub, net.Addr) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	hub := NewHub(20, 10)
	go hub.Run()
	go func() {
		_ = hub.Serve(ln)
	}()
	t.Cleanup(func() { ln.Close() })

	return hub, ln.Addr()
}

func dialAndConnect(t *testing.T, addr net.Addr, nickname string) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)

	require.NoError(t, protocol.WriteMessage(conn, &protocol.Message{Type: protocol.Connect, Nickname: nickname}))
	ack, err := protocol.ReadMessage(conn)
	require.NoError(t, err)
	require.Equal(t, protocol.ConnectAck, ack.Type)

	return conn
}

func recvWithin(t *testing.T, conn net.Conn, d time.Duration) *protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(d))
	msg, err := protocol.ReadMessage(conn)
	require.NoError(t, err)
	return msg
}

// S4 — basic two-client game through room create/list/join and one move.
func TestBasicGameSession(t *testing.T) {
	_, addr := startTestHub(t)

	h := dialAndConnect(t, addr, "H")
	defer h.Close()
	g := dialAndConnect(t, addr, "G")
	defer g.Close()

	require.NoError(t, protocol.WriteMessage(h, &protocol.Message{Type: protocol.RoomCreate, Nickname: "room1"}))
	createAck := recvWithin(t, h, time.Second)
	require.Equal(t, protocol.RoomCreateAck, createAck.Type)
	roomID := createAck.X

	require.NoError(t, protocol.WriteMessage(g, &protocol.Message{Type: protocol.RoomList}))
	listResp := recvWithin(t, g, time.Second)
	require.Equal(t, protocol.RoomListResp, listResp.Type)
	require.Len(t, listResp.Rooms, 1)
	require.Equal(t, "room1", listResp.Rooms[0].Name)
	require.Equal(t, "H", listResp.Rooms[0].HostName)
	require.Equal(t, int32(1), listResp.Rooms[0].PlayerCount)

	require.NoError(t, protocol.WriteMessage(g, &protocol.Message{Type: protocol.RoomJoin, X: roomID}))
	joinAck := recvWithin(t, g, time.Second)
	require.Equal(t, protocol.RoomJoinAck, joinAck.Type)

	hStart := recvWithin(t, h, time.Second)
	require.Equal(t, protocol.GameStart, hStart.Type)
	require.Equal(t, int32(1), hStart.Player)
	require.Equal(t, "G", hStart.Nickname)

	gStart := recvWithin(t, g, time.Second)
	require.Equal(t, protocol.GameStart, gStart.Type)
	require.Equal(t, int32(2), gStart.Player)
	require.Equal(t, "H", gStart.Nickname)

	require.NoError(t, protocol.WriteMessage(h, &protocol.Message{Type: protocol.Move, X: 7, Y: 7, Player: 1}))

	moveAck := recvWithin(t, h, time.Second)
	require.Equal(t, protocol.MoveAck, moveAck.Type)
	require.Equal(t, int32(7), moveAck.X)
	require.Equal(t, int32(7), moveAck.Y)

	relayed := recvWithin(t, g, time.Second)
	require.Equal(t, protocol.Move, relayed.Type)
	require.Equal(t, int32(7), relayed.X)
	require.Equal(t, int32(7), relayed.Y)
}

// S5 — move out of turn is rejected with ERROR and no state change.
func TestMoveOutOfTurnRejected(t *testing.T) {
	_, addr := startTestHub(t)

	h := dialAndConnect(t, addr, "H")
	defer h.Close()
	g := dialAndConnect(t, addr, "G")
	defer g.Close()

	require.NoError(t, protocol.WriteMessage(h, &protocol.Message{Type: protocol.RoomCreate, Nickname: "room1"}))
	createAck := recvWithin(t, h, time.Second)
	roomID := createAck.X

	require.NoError(t, protocol.WriteMessage(g, &protocol.Message{Type: protocol.RoomJoin, X: roomID}))
	recvWithin(t, g, time.Second) // join ack
	recvWithin(t, h, time.Second) // game start
	recvWithin(t, g, time.Second) // game start

	require.NoError(t, protocol.WriteMessage(g, &protocol.Message{Type: protocol.Move, X: 5, Y: 5, Player: 2}))
	errMsg := recvWithin(t, g, time.Second)
	require.Equal(t, protocol.Error, errMsg.Type)
}

// S6 — peer disconnect during a game notifies the survivor once and empties
// the room list.
func TestPeerDisconnectDuringGame(t *testing.T) {
	_, addr := startTestHub(t)

	h := dialAndConnect(t, addr, "H")
	g := dialAndConnect(t, addr, "G")
	defer g.Close()

	require.NoError(t, protocol.WriteMessage(h, &protocol.Message{Type: protocol.RoomCreate, Nickname: "room1"}))
	createAck := recvWithin(t, h, time.Second)
	roomID := createAck.X

	require.NoError(t, protocol.WriteMessage(g, &protocol.Message{Type: protocol.RoomJoin, X: roomID}))
	recvWithin(t, g, time.Second)
	recvWithin(t, h, time.Second)
	recvWithin(t, g, time.Second)

	h.Close()

	left := recvWithin(t, g, 2*time.Second)
	require.Equal(t, protocol.OpponentLeft, left.Type)

	require.NoError(t, protocol.WriteMessage(g, &protocol.Message{Type: protocol.RoomList}))
	listResp := recvWithin(t, g, time.Second)
	require.Equal(t, protocol.RoomListResp, listResp.Type)
	require.Empty(t, listResp.Rooms)
}
