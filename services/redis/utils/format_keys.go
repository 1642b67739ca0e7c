package utils

/**
 * Utility functions to format the keys for Redis (key, value) pairs.
 * Avoids repeating the same fmt.Sprintf format spec all over the place.
 */

import "fmt"

func FormatLobbySnapshotKey() string {
	return "lobby:servers"
}

func FormatPresenceKey(connectionID string) string {
	return fmt.Sprintf("presence:%s", connectionID)
}
