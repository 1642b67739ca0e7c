package game

import (
	"math/rand"
	"sync"

	game_constants "Ironsights/constants/game"
)

// Room is one isolated match instance. Every read-then-write of the member
// set or of a PlayerRecord it owns happens under mu, so occupancy checks,
// health mutations and respawn decisions are atomic relative to each other.
// Rooms are fully independent units of concurrency.
type Room struct {
	ID   uint64
	Name string

	mu       sync.RWMutex
	capacity int
	closed   bool
	members  map[string]*PlayerRecord
}

func newRoom(id uint64, name string, capacity int) *Room {
	return &Room{
		ID:       id,
		Name:     name,
		capacity: capacity,
		members:  make(map[string]*PlayerRecord),
	}
}

// assignTeam is the team balancer: given current per-team counts it returns
// the team with strictly fewer members, team A on an exact tie. Deterministic
// so that assignment is reproducible.
func assignTeam(countA, countB int) Team {
	if countB < countA {
		return TeamB
	}
	return TeamA
}

// pickSpawn picks a spawn position uniformly from the team's configured pool.
func pickSpawn(team Team) Vector3 {
	pool := game_constants.TeamASpawns
	if team == TeamB {
		pool = game_constants.TeamBSpawns
	}
	p := pool[rand.Intn(len(pool))]
	return Vector3{X: p[0], Y: p[1], Z: p[2]}
}

func (r *Room) Capacity() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capacity
}

func (r *Room) Occupancy() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *Room) hasMember(connectionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[connectionID]
	return ok
}

// addPlayer inserts a fresh PlayerRecord for the connection. The occupancy
// check and the insert are one atomic step, so the |members| <= capacity
// invariant holds under concurrent joins. Returns the new player's state and
// a snapshot of the members that were already present.
func (r *Room) addPlayer(connectionID, displayName string) (PlayerState, []PlayerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return PlayerState{}, nil, ErrRoomNotFound
	}
	if len(r.members) >= r.capacity {
		return PlayerState{}, nil, ErrRoomFull
	}

	var countA, countB int
	for _, m := range r.members {
		if m.Team == TeamA {
			countA++
		} else {
			countB++
		}
	}
	team := assignTeam(countA, countB)

	peers := make([]PlayerState, 0, len(r.members))
	for _, m := range r.members {
		peers = append(peers, m.state())
	}

	rec := newPlayerRecord(connectionID, displayName, team, pickSpawn(team))
	r.members[connectionID] = rec

	return rec.state(), peers, nil
}

// removePlayer takes the connection out of the room, cancelling any pending
// respawn it owns. Reports whether the connection was a member and whether
// the room is now empty. Idempotent.
func (r *Room) removePlayer(connectionID string) (PlayerSummary, bool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.members[connectionID]
	if !ok {
		return PlayerSummary{}, false, false
	}
	rec.cancelRespawn()
	delete(r.members, connectionID)
	return rec.summary(), true, len(r.members) == 0 && !r.closed
}

// updateTelemetry overwrites the caller's client-reported telemetry.
// No validation, by contract.
func (r *Room) updateTelemetry(connectionID string, position Vector3, facing float64, weapon string) (PlayerState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.members[connectionID]
	if !ok {
		return PlayerState{}, false
	}
	rec.Position = position
	rec.Facing = facing
	if weapon != "" {
		rec.Weapon = weapon
	}
	return rec.state(), true
}

func (r *Room) setCapacity(capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacity = capacity
}

// close marks the room dead, cancels every pending respawn and empties the
// member set. Returns the evicted summaries for notification. Called with
// the registry lock held, so no new member can race in through Find.
func (r *Room) close() []PlayerSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	evicted := make([]PlayerSummary, 0, len(r.members))
	for id, rec := range r.members {
		rec.cancelRespawn()
		evicted = append(evicted, rec.summary())
		delete(r.members, id)
	}
	return evicted
}

// memberStates returns the full in-session view of every member.
func (r *Room) memberStates() []PlayerState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]PlayerState, 0, len(r.members))
	for _, rec := range r.members {
		states = append(states, rec.state())
	}
	return states
}

// RoomSummary is the redacted lobby view of a room.
type RoomSummary struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Capacity  int             `json:"capacity"`
	Occupancy int             `json:"occupancy"`
	Players   []PlayerSummary `json:"players"`
}

func (r *Room) summary() RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]PlayerSummary, 0, len(r.members))
	for _, rec := range r.members {
		players = append(players, rec.summary())
	}
	return RoomSummary{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.capacity,
		Occupancy: len(r.members),
		Players:   players,
	}
}
