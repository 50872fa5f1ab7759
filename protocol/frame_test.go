package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := &Message{
		Type:     Move,
		X:        7,
		Y:        8,
		Player:   ColorBlack,
		Result:   ResultNone,
		Nickname: "Alice",
		Message:  "ok",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, msg))

	got, err := ReadMessage(&buf)
	require.NoError(t, err)
	require.Equal(t, msg.Type, got.Type)
	require.Equal(t, msg.X, got.X)
	require.Equal(t, msg.Y, got.Y)
	require.Equal(t, msg.Player, got.Player)
	require.Equal(t, msg.Result, got.Result)
	require.Equal(t, msg.Nickname, got.Nickname)
	require.Equal(t, msg.Message, got.Message)
}

func TestRoomListRoundTrip(t *testing.T) {
	msg := &Message{
		Type: RoomListResp,
		X:    0,
		Y:    2,
		Rooms: []RoomInfo{
			{RoomID: 1, Name: "room1", HostName: "H", PlayerCount: 1, InGame: false},
			{RoomID: 2, Name: "room2", HostName: "G", PlayerCount: 2, InGame: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, msg))

	got, err := ReadMessage(&buf)
	require.NoError(t, err)
	require.Len(t, got.Rooms, 2)
	require.Equal(t, msg.Rooms[0], got.Rooms[0])
	require.Equal(t, msg.Rooms[1], got.Rooms[1])
}

func TestReadMessageFramingMismatchError(t *testing.T) {
	var buf bytes.Buffer
	var lenPrefix [4]byte
	lenPrefix[3] = 5 // bogus length, far smaller than recordSize
	buf.Write(lenPrefix[:])
	buf.Write(make([]byte, 5))

	_, err := ReadMessage(&buf)
	require.ErrorIs(t, err, ErrFraming)
}
