package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// hostOrder is used for every integer field inside the message record. Per
// spec §4.3/§9 this is a known, intentionally-unfixed limitation: only the
// 4-byte frame length prefix is transmitted in network order.
var hostOrder = binary.LittleEndian

// recordSize is the fixed byte length of one wire message record:
// 5 int32 fields (20 bytes) + nickname[50] + message[256] + rooms[10]*94.
const roomInfoSize = 4 + roomNameLen + nicknameLen + 4 + 4 // 94
const recordSize = 4*5 + nicknameLen + messageLen + maxRooms*roomInfoSize

// ErrFraming is returned when a length prefix doesn't match recordSize; the
// caller must treat this as a protocol error and close the connection.
var ErrFraming = fmt.Errorf("protocol: frame length does not match record size %d", recordSize)

// WriteMessage frames and writes msg: a 4-byte network-order length prefix
// (always recordSize) followed by the fixed-layout record.
func WriteMessage(w io.Writer, msg *Message) error {
	body := encode(msg)

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(body)))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// ReadMessage reads one framed message: a 4-byte network-order length
// prefix, then exactly that many bytes. A prefix that doesn't equal
// recordSize is a framing error (ErrFraming) and the connection must be
// closed by the caller.
func ReadMessage(r io.Reader) (*Message, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenPrefix[:])
	if n != recordSize {
		return nil, ErrFraming
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return decode(body), nil
}

func putFixedString(buf []byte, s string) {
	n := copy(buf, s)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
}

func readFixedString(buf []byte) string {
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		i = len(buf)
	}
	return string(buf[:i])
}

func encode(msg *Message) []byte {
	buf := make([]byte, recordSize)
	off := 0

	putInt32 := func(v int32) {
		hostOrder.PutUint32(buf[off:], uint32(v))
		off += 4
	}

	putInt32(int32(msg.Type))
	putInt32(msg.X)
	putInt32(msg.Y)
	putInt32(msg.Player)
	putInt32(int32(msg.Result))

	putFixedString(buf[off:off+nicknameLen], msg.Nickname)
	off += nicknameLen
	putFixedString(buf[off:off+messageLen], msg.Message)
	off += messageLen

	for i := 0; i < maxRooms; i++ {
		start := off + i*roomInfoSize
		roomOff := start
		if i < len(msg.Rooms) {
			ri := msg.Rooms[i]
			hostOrder.PutUint32(buf[roomOff:], uint32(ri.RoomID))
			roomOff += 4
			putFixedString(buf[roomOff:roomOff+roomNameLen], ri.Name)
			roomOff += roomNameLen
			putFixedString(buf[roomOff:roomOff+nicknameLen], ri.HostName)
			roomOff += nicknameLen
			hostOrder.PutUint32(buf[roomOff:], uint32(ri.PlayerCount))
			roomOff += 4
			inGame := int32(0)
			if ri.InGame {
				inGame = 1
			}
			hostOrder.PutUint32(buf[roomOff:], uint32(inGame))
		}
	}

	return buf
}

func decode(buf []byte) *Message {
	off := 0

	getInt32 := func() int32 {
		v := int32(hostOrder.Uint32(buf[off:]))
		off += 4
		return v
	}

	msg := &Message{}
	msg.Type = Type(getInt32())
	msg.X = getInt32()
	msg.Y = getInt32()
	msg.Player = getInt32()
	msg.Result = Result(getInt32())

	msg.Nickname = readFixedString(buf[off : off+nicknameLen])
	off += nicknameLen
	msg.Message = readFixedString(buf[off : off+messageLen])
	off += messageLen

	validRooms := int(msg.Y)
	if msg.Type != RoomListResp || validRooms < 0 || validRooms > maxRooms {
		validRooms = 0
	}

	for i := 0; i < maxRooms; i++ {
		start := off + i*roomInfoSize
		roomOff := start
		roomID := int32(hostOrder.Uint32(buf[roomOff:]))
		roomOff += 4
		name := readFixedString(buf[roomOff : roomOff+roomNameLen])
		roomOff += roomNameLen
		hostName := readFixedString(buf[roomOff : roomOff+nicknameLen])
		roomOff += nicknameLen
		playerCount := int32(hostOrder.Uint32(buf[roomOff:]))
		roomOff += 4
		inGame := hostOrder.Uint32(buf[roomOff:]) != 0

		if i < validRooms {
			msg.Rooms = append(msg.Rooms, RoomInfo{
				RoomID:      roomID,
				Name:        name,
				HostName:    hostName,
				PlayerCount: playerCount,
				InGame:      inGame,
			})
		}
	}

	return msg
}
