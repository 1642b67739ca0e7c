package game

import (
	"sort"
	"sync"

	game_constants "Ironsights/constants/game"
)

// Registry owns the set of active match rooms. Its lock only guards the
// id -> room mapping and id allocation; per-room state is guarded by each
// room's own lock. When both are needed the registry lock is acquired first.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[uint64]*Room
	nextID uint64

	// AutoDeleteEmpty makes the last leave tear the room down as if an admin
	// had deleted it. Policy choice, off by default.
	AutoDeleteEmpty bool
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[uint64]*Room),
		nextID: 1,
	}
}

func clampCapacity(capacity int) int {
	if capacity < game_constants.MinRoomCapacity {
		return game_constants.MinRoomCapacity
	}
	if capacity > game_constants.MaxRoomCapacity {
		return game_constants.MaxRoomCapacity
	}
	return capacity
}

// Create registers a new room with a fresh, never-reused id.
func (rg *Registry) Create(name string, capacity int) *Room {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	room := newRoom(rg.nextID, name, clampCapacity(capacity))
	rg.rooms[room.ID] = room
	rg.nextID++
	return room
}

// Delete removes the room and evicts every member. After Delete the id is
// permanently invalid. Returns the final scoreboard (taken before eviction)
// and the evicted player summaries.
func (rg *Registry) Delete(roomID uint64) (RoomSummary, []PlayerSummary, error) {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	room, ok := rg.rooms[roomID]
	if !ok {
		return RoomSummary{}, nil, ErrRoomNotFound
	}
	final := room.summary()
	evicted := room.close()
	delete(rg.rooms, roomID)
	return final, evicted, nil
}

func (rg *Registry) Find(roomID uint64) (*Room, error) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	room, ok := rg.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// SetCapacity clamps and applies a new capacity. Shrinking below current
// occupancy is allowed; the bound is enforced at join, not after.
func (rg *Registry) SetCapacity(roomID uint64, capacity int) (int, error) {
	room, err := rg.Find(roomID)
	if err != nil {
		return 0, err
	}
	clamped := clampCapacity(capacity)
	room.setCapacity(clamped)
	return clamped, nil
}

// Summary returns the redacted lobby view of a single room.
func (rg *Registry) Summary(roomID uint64) (RoomSummary, error) {
	room, err := rg.Find(roomID)
	if err != nil {
		return RoomSummary{}, err
	}
	return room.summary(), nil
}

// List returns the redacted lobby snapshot of every room, ordered by id.
func (rg *Registry) List() []RoomSummary {
	rg.mu.RLock()
	rooms := make([]*Room, 0, len(rg.rooms))
	for _, room := range rg.rooms {
		rooms = append(rooms, room)
	}
	rg.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, room.summary())
	}
	return summaries
}
