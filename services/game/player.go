package game

import (
	"fmt"
	"strings"
	"time"

	game_constants "Ironsights/constants/game"
)

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Vector3 is a client-reported world position. The server stores it as
// last-known-good telemetry and never validates it against game rules.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlayerRecord is the authoritative combat state of one connected player.
// It is owned by exactly one Room while joined and must only be mutated
// while holding that room's lock.
type PlayerRecord struct {
	ConnectionID string
	DisplayName  string
	Team         Team

	Position Vector3
	Facing   float64
	Weapon   string

	Health int
	Alive  bool
	Kills  int
	Deaths int

	// Pending respawn handle, nil unless the player is currently dead with a
	// resurrection scheduled. Guarded by the owning room's lock.
	respawn *time.Timer
}

func newPlayerRecord(connectionID, displayName string, team Team, spawn Vector3) *PlayerRecord {
	return &PlayerRecord{
		ConnectionID: connectionID,
		DisplayName:  sanitizeDisplayName(displayName, connectionID),
		Team:         team,
		Position:     spawn,
		Weapon:       game_constants.DefaultWeapon,
		Health:       game_constants.MaxHealth,
		Alive:        true,
	}
}

// sanitizeDisplayName trims the client-provided name and falls back to a
// placeholder derived from the connection id when nothing usable remains.
func sanitizeDisplayName(name, connectionID string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	short := connectionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("player-%s", short)
}

// cancelRespawn stops the pending respawn timer, if any. Caller must hold
// the owning room's lock.
func (p *PlayerRecord) cancelRespawn() {
	if p.respawn != nil {
		p.respawn.Stop()
		p.respawn = nil
	}
}

// PlayerSummary is the redacted per-player view exposed on the lobby list.
// Health and position are private to the session channel.
type PlayerSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Team   Team   `json:"team"`
	Kills  int    `json:"kills"`
	Deaths int    `json:"deaths"`
}

// PlayerState is the full in-session view of a player, sent to room members.
type PlayerState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Team     Team    `json:"team"`
	Position Vector3 `json:"position"`
	Facing   float64 `json:"facing"`
	Weapon   string  `json:"weapon"`
	Health   int     `json:"health"`
	Alive    bool    `json:"alive"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
}

func (p *PlayerRecord) summary() PlayerSummary {
	return PlayerSummary{
		ID:     p.ConnectionID,
		Name:   p.DisplayName,
		Team:   p.Team,
		Kills:  p.Kills,
		Deaths: p.Deaths,
	}
}

func (p *PlayerRecord) state() PlayerState {
	return PlayerState{
		ID:       p.ConnectionID,
		Name:     p.DisplayName,
		Team:     p.Team,
		Position: p.Position,
		Facing:   p.Facing,
		Weapon:   p.Weapon,
		Health:   p.Health,
		Alive:    p.Alive,
		Kills:    p.Kills,
		Deaths:   p.Deaths,
	}
}
