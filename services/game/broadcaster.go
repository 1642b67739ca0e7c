package game

// Broadcaster is the narrow transport surface the core emits through. Room
// ids double as broadcast-group ids; a reserved global group carries lobby
// list updates. Implemented by the socket.io layer; faked in tests.
type Broadcaster interface {
	SendTo(connectionID string, event string, payload interface{})
	// BroadcastToRoom fans out to the room's subscribers. exceptConnectionID
	// may be empty to reach every member.
	BroadcastToRoom(roomID uint64, event string, payload interface{}, exceptConnectionID string)
	BroadcastGlobal(event string, payload interface{})
	Subscribe(connectionID string, roomID uint64)
	Unsubscribe(connectionID string, roomID uint64)
}

// LobbyStore mirrors the redacted lobby state into a volatile store so other
// processes can read it cheaply. All methods are best-effort side channels;
// failures are logged, never surfaced to players.
type LobbyStore interface {
	SaveLobbySnapshot(rooms []RoomSummary) error
	SavePlayerPresence(connectionID, displayName string, roomID uint64) error
	DeletePlayerPresence(connectionID string) error
}

// MatchSink receives the final scoreboard of a room that was torn down.
type MatchSink interface {
	SaveMatchResult(final RoomSummary) error
}
