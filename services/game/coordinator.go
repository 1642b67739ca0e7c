package game

import (
	"log"
	"sync"
	"time"

	game_constants "Ironsights/constants/game"

	"github.com/gin-gonic/gin"
)

// Coordinator is the session orchestrator: it routes inbound connection
// events to the registry, balancer, combat resolver and respawn scheduler,
// and produces the outbound broadcast set. All emits happen after the room
// lock involved has been released, so slow delivery can never stall state
// updates.
type Coordinator struct {
	Registry *Registry

	// RespawnDelay between an elimination and the resurrection. Defaults to
	// the configured constant; tests shorten it.
	RespawnDelay time.Duration

	sio   Broadcaster
	store LobbyStore // optional
	sink  MatchSink  // optional

	// connection index: which room each connection is currently in
	mu    sync.RWMutex
	index map[string]uint64
}

// NewCoordinator wires the session coordinator. store and sink may be nil;
// the core runs without redis or postgres.
func NewCoordinator(registry *Registry, sio Broadcaster, store LobbyStore, sink MatchSink) *Coordinator {
	return &Coordinator{
		Registry:     registry,
		RespawnDelay: game_constants.RespawnDelaySeconds * time.Second,
		sio:          sio,
		store:        store,
		sink:         sink,
		index:        make(map[string]uint64),
	}
}

func (c *Coordinator) roomOf(connectionID string) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roomID, ok := c.index[connectionID]
	return roomID, ok
}

// afterStructuralChange re-broadcasts the full lobby list to every connected
// client and refreshes the redis mirror. Called on create, delete, capacity
// and occupancy changes.
func (c *Coordinator) afterStructuralChange() {
	snapshot := c.Registry.List()
	c.sio.BroadcastGlobal("serverList", gin.H{"servers": snapshot})
	if c.store != nil {
		if err := c.store.SaveLobbySnapshot(snapshot); err != nil {
			log.Printf("[LOBBY-ERROR] Error saving lobby snapshot to Redis: %v", err)
		}
	}
}

// CreateRoom registers a new room and announces it on the lobby channel.
func (c *Coordinator) CreateRoom(name string, capacity int) RoomSummary {
	room := c.Registry.Create(name, capacity)
	log.Printf("[ADMIN] Created server %d (%s), capacity %d", room.ID, room.Name, room.Capacity())
	c.afterStructuralChange()
	return room.summary()
}

// DeleteRoom tears a room down: every member is evicted and notified, the
// final scoreboard is handed to the match sink, and the id becomes invalid.
func (c *Coordinator) DeleteRoom(roomID uint64) error {
	final, evicted, err := c.Registry.Delete(roomID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for _, p := range evicted {
		delete(c.index, p.ID)
	}
	c.mu.Unlock()

	for _, p := range evicted {
		c.sio.Unsubscribe(p.ID, roomID)
		c.sio.SendTo(p.ID, "forcedLeave", gin.H{"serverId": roomID, "reason": "serverDeleted"})
		if c.store != nil {
			if err := c.store.SavePlayerPresence(p.ID, p.Name, 0); err != nil {
				log.Printf("[ADMIN-ERROR] Error updating presence for %s: %v", p.ID, err)
			}
		}
	}

	if c.sink != nil {
		if err := c.sink.SaveMatchResult(final); err != nil {
			log.Printf("[ADMIN-ERROR] Error persisting match result for server %d: %v", roomID, err)
		}
	}

	log.Printf("[ADMIN] Deleted server %d, evicted %d players", roomID, len(evicted))
	c.afterStructuralChange()
	return nil
}

// SetCapacity clamps and applies a new capacity, then refreshes the lobby.
func (c *Coordinator) SetCapacity(roomID uint64, capacity int) (int, error) {
	clamped, err := c.Registry.SetCapacity(roomID, capacity)
	if err != nil {
		return 0, err
	}
	log.Printf("[ADMIN] Server %d capacity set to %d", roomID, clamped)
	c.afterStructuralChange()
	return clamped, nil
}

// ListRooms returns the redacted lobby snapshot.
func (c *Coordinator) ListRooms() []RoomSummary {
	return c.Registry.List()
}

// Join puts a connection into a room: team assignment, spawn position, fresh
// counters, subscription, then the join fan-out. A connection already in a
// room is moved (leave then join).
func (c *Coordinator) Join(connectionID string, roomID uint64, displayName string) error {
	if _, ok := c.roomOf(connectionID); ok {
		c.Leave(connectionID, "switchedServer")
	}

	room, err := c.Registry.Find(roomID)
	if err != nil {
		return err
	}

	you, peers, err := room.addPlayer(connectionID, displayName)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.index[connectionID] = roomID
	c.mu.Unlock()

	c.sio.Subscribe(connectionID, roomID)

	c.sio.SendTo(connectionID, "joinedServer", gin.H{
		"server": gin.H{
			"id":        room.ID,
			"name":      room.Name,
			"capacity":  room.Capacity(),
			"occupancy": len(peers) + 1,
		},
		"you":   you,
		"peers": peers,
	})
	c.sio.BroadcastToRoom(roomID, "peerJoined", gin.H{"player": you}, connectionID)

	if c.store != nil {
		if err := c.store.SavePlayerPresence(connectionID, you.Name, roomID); err != nil {
			log.Printf("[JOIN-ERROR] Error saving presence for %s: %v", connectionID, err)
		}
	}

	log.Printf("[JOIN] %s (%s) joined server %d on team %s", you.Name, connectionID, roomID, you.Team)
	c.afterStructuralChange()
	return nil
}

// Leave removes a connection from whatever room it is in. Explicit leave,
// disconnect and admin kick all converge here. No-op when the connection is
// not in any room, so duplicate delivery is harmless.
func (c *Coordinator) Leave(connectionID, reason string) {
	c.mu.Lock()
	roomID, ok := c.index[connectionID]
	if ok {
		delete(c.index, connectionID)
	}
	c.mu.Unlock()
	if !ok {
		return
	}

	room, err := c.Registry.Find(roomID)
	if err != nil {
		return
	}

	left, wasMember, empty := room.removePlayer(connectionID)
	if !wasMember {
		return
	}

	c.sio.Unsubscribe(connectionID, roomID)
	c.sio.BroadcastToRoom(roomID, "peerLeft", gin.H{
		"id":     left.ID,
		"name":   left.Name,
		"reason": reason,
	}, connectionID)

	if c.store != nil {
		if err := c.store.SavePlayerPresence(connectionID, left.Name, 0); err != nil {
			log.Printf("[LEAVE-ERROR] Error updating presence for %s: %v", connectionID, err)
		}
	}

	log.Printf("[LEAVE] %s (%s) left server %d (%s)", left.Name, connectionID, roomID, reason)

	if empty && c.Registry.AutoDeleteEmpty {
		if err := c.DeleteRoom(roomID); err == nil {
			return
		}
	}
	c.afterStructuralChange()
}

// Disconnect handles a dropped connection, which is treated identically to
// an explicit leave.
func (c *Coordinator) Disconnect(connectionID string) {
	c.Leave(connectionID, "disconnected")
	if c.store != nil {
		if err := c.store.DeletePlayerPresence(connectionID); err != nil {
			log.Printf("[DISCONNECT-ERROR] Error deleting presence for %s: %v", connectionID, err)
		}
	}
}

// Kick force-removes a player from a room on behalf of an admin.
func (c *Coordinator) Kick(roomID uint64, connectionID string) error {
	room, err := c.Registry.Find(roomID)
	if err != nil {
		return err
	}
	if !room.hasMember(connectionID) {
		return ErrNotAMember
	}
	c.sio.SendTo(connectionID, "forcedLeave", gin.H{"serverId": roomID, "reason": "kicked"})
	c.Leave(connectionID, "kicked")
	return nil
}

// UpdateTelemetry stores the caller's client-reported position, facing and
// weapon, then relays them to the rest of the room. Calls from connections
// that are not in a room are dropped silently.
func (c *Coordinator) UpdateTelemetry(connectionID string, position Vector3, facing float64, weapon string) {
	roomID, ok := c.roomOf(connectionID)
	if !ok {
		return
	}
	room, err := c.Registry.Find(roomID)
	if err != nil {
		return
	}
	state, ok := room.updateTelemetry(connectionID, position, facing, weapon)
	if !ok {
		return
	}
	c.sio.BroadcastToRoom(roomID, "peerUpdate", gin.H{
		"id":       state.ID,
		"position": state.Position,
		"facing":   state.Facing,
		"weapon":   state.Weapon,
		"alive":    state.Alive,
	}, connectionID)
}

// NotifyShot relays a fired-weapon event to the rest of the room. Stateless.
func (c *Coordinator) NotifyShot(connectionID, weapon string) {
	roomID, ok := c.roomOf(connectionID)
	if !ok {
		return
	}
	room, err := c.Registry.Find(roomID)
	if err != nil || !room.hasMember(connectionID) {
		return
	}
	c.sio.BroadcastToRoom(roomID, "peerShoot", gin.H{
		"id":     connectionID,
		"weapon": weapon,
	}, connectionID)
}

// ApplyHit resolves a hit reported by the attacker's client and fans out the
// resulting notifications. Non-qualifying hits are silent no-ops.
func (c *Coordinator) ApplyHit(attackerID, targetID string, damage int, weapon string) {
	roomID, ok := c.roomOf(attackerID)
	if !ok {
		return
	}
	room, err := c.Registry.Find(roomID)
	if err != nil {
		return
	}

	res := room.applyHit(attackerID, targetID, damage, weapon)
	switch res.Outcome {
	case HitDamaged:
		c.sio.SendTo(targetID, "tookDamage", gin.H{
			"health":     res.Target.Health,
			"attackerId": res.Attacker.ID,
			"weapon":     res.Weapon,
		})
		c.sio.SendTo(attackerID, "hitConfirmed", gin.H{
			"targetId": res.Target.ID,
			"health":   res.Target.Health,
		})

	case HitEliminated:
		log.Printf("[HIT] %s eliminated %s in server %d (%s)",
			res.Attacker.Name, res.Target.Name, roomID, res.Weapon)
		c.sio.BroadcastToRoom(roomID, "elimination", gin.H{
			"killerId":    res.Attacker.ID,
			"killerName":  res.Attacker.Name,
			"victimId":    res.Target.ID,
			"victimName":  res.Target.Name,
			"weapon":      res.Weapon,
			"killerKills": res.Attacker.Kills,
		}, "")
		c.sio.SendTo(targetID, "youDied", gin.H{
			"killerId":  res.Attacker.ID,
			"respawnIn": c.RespawnDelay.Seconds(),
		})
		c.scheduleRespawn(room, targetID)
	}
}

// scheduleRespawn arms the one pending respawn a freshly dead player owns.
// Only called on the alive -> dead transition.
func (c *Coordinator) scheduleRespawn(room *Room, connectionID string) {
	armed := room.armRespawn(connectionID, c.RespawnDelay, func() {
		c.finishRespawn(room, connectionID)
	})
	if !armed {
		log.Printf("[RESPAWN] Skipped arming respawn for %s in server %d", connectionID, room.ID)
	}
}

// finishRespawn is the timer's fire path. Membership and the dead flag are
// re-validated under the room lock inside completeRespawn; a player who left
// in the meantime stays gone and nothing is emitted.
func (c *Coordinator) finishRespawn(room *Room, connectionID string) {
	state, ok := room.completeRespawn(connectionID)
	if !ok {
		return
	}
	c.sio.SendTo(connectionID, "youRespawned", gin.H{
		"position": state.Position,
		"health":   state.Health,
	})
	c.sio.BroadcastToRoom(room.ID, "peerRespawned", gin.H{
		"id":       state.ID,
		"position": state.Position,
	}, connectionID)
	log.Printf("[RESPAWN] %s respawned in server %d", connectionID, room.ID)
}
