package game

import "errors"

// Expected, recoverable conditions surfaced to clients through the reply
// channel. The error text doubles as the wire-level error code.
var (
	ErrRoomNotFound = errors.New("RoomNotFound")
	ErrRoomFull     = errors.New("RoomFull")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrNotAMember   = errors.New("NotAMember")
)
