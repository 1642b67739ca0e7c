package game

import (
	"time"

	game_constants "Ironsights/constants/game"
)

// armRespawn installs the pending respawn timer for a dead member. Refuses
// to arm when the player already left, is alive again, or already has one
// outstanding, so at most one pending respawn exists per dead player.
func (r *Room) armRespawn(connectionID string, delay time.Duration, fire func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.members[connectionID]
	if !ok || rec.Alive || rec.respawn != nil {
		return false
	}
	rec.respawn = time.AfterFunc(delay, fire)
	return true
}

// completeRespawn is the timer's fire path. It re-validates under the room
// lock that the player is still a member and still dead before resurrecting,
// which is what makes a stale timer harmless.
func (r *Room) completeRespawn(connectionID string) (PlayerState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.members[connectionID]
	if !ok || rec.Alive {
		return PlayerState{}, false
	}
	rec.respawn = nil
	rec.Health = game_constants.MaxHealth
	rec.Alive = true
	rec.Position = pickSpawn(rec.Team)
	return rec.state(), true
}
