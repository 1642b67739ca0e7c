package redis

// LobbySnapshot is the redacted lobby view mirrored into Redis on every
// structural change, so other processes (site, ops tooling) can read the
// live server list without touching the game process.
type LobbySnapshot struct {
	ID        uint64           `json:"id"`
	Name      string           `json:"name"`
	Capacity  int              `json:"capacity"`
	Occupancy int              `json:"occupancy"`
	Players   []PlayerSnapshot `json:"players"`
}

// PlayerSnapshot is the per-player slice of a LobbySnapshot. Never carries
// health or position, which are private to the session channel.
type PlayerSnapshot struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Kills  int    `json:"kills"`
	Deaths int    `json:"deaths"`
}
