// Package protocol implements the fixed-layout, length-prefixed wire
// message shared by the relay server and its clients (spec §4.3, §6).
package protocol

// Type is the wire message type code. Values are stable per spec §6.
type Type int32

const (
	Connect       Type = 1
	ConnectAck    Type = 2
	Disconnect    Type = 3
	RoomCreate    Type = 10
	RoomCreateAck Type = 11
	RoomList      Type = 12
	RoomListResp  Type = 13
	RoomJoin      Type = 14
	RoomJoinAck   Type = 15
	RoomLeave     Type = 16
	RoomFull      Type = 17
	RoomNotFound  Type = 18
	GameStart     Type = 20
	Move          Type = 21
	MoveAck       Type = 22
	GameEnd       Type = 23
	OpponentLeft  Type = 24
	Ping          Type = 40
	Pong          Type = 41
	Error         Type = 99
)

// Result is the game-end outcome carried in a GameEnd message's Result
// field.
type Result int32

const (
	ResultNone         Result = 0
	ResultBlackWin     Result = 1
	ResultWhiteWin     Result = 2
	ResultDraw         Result = 3
	ResultDisconnect   Result = 4
)

// Color codes used on the wire, matching board.Cell's numbering.
const (
	ColorEmpty = 0
	ColorBlack = 1
	ColorWhite = 2
)

// Field size limits, in bytes, of the fixed-width string fields.
const (
	nicknameLen = 50
	messageLen  = 256
	roomNameLen = 32
	maxRooms    = 10
)

// RoomInfo is one entry of a ROOM_LIST_RESP payload.
type RoomInfo struct {
	RoomID      int32
	Name        string
	HostName    string
	PlayerCount int32
	InGame      bool
}

// Message is the single fixed-layout record used for every message
// direction (spec §4.3). Not every field is meaningful for every Type; the
// zero value of an unused field is simply ignored by the handler.
type Message struct {
	Type     Type
	X        int32 // board column, or room_id for list responses
	Y        int32 // board row, or room_count for list responses
	Player   int32 // 1=Black, 2=White; also "your color" on GameStart
	Result   Result
	Nickname string // player or room name, <=49 bytes
	Message  string // human-readable status/error, <=255 bytes
	Rooms    []RoomInfo
}
