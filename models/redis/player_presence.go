package redis

type PresenceStatus string

const (
	StatusOnline PresenceStatus = "online"
	StatusInGame PresenceStatus = "in_game"
)

// PlayerPresence tracks one live connection: whether it is idling in the
// lobby or fighting in a server.
type PlayerPresence struct {
	ConnectionID string         `json:"connection_id"`
	DisplayName  string         `json:"display_name"`
	Status       PresenceStatus `json:"status"`
	ServerID     uint64         `json:"server_id"` // 0 when not in a server
	LastSeen     int64          `json:"last_seen"` // Unix timestamp
}
