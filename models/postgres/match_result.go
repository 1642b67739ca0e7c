package postgres

import (
	"time"

	"gorm.io/datatypes"
)

// MatchResult is the persisted record of one closed game server: written
// when the room is deleted, one row per match. The live session itself is
// never persisted.
type MatchResult struct {
	ID         uint   `gorm:"primaryKey"`
	ServerID   uint64 `gorm:"not null;index"`
	ServerName string `gorm:"not null"`
	TeamAKills int
	TeamBKills int
	// Final per-player scoreboard (id, name, team, kills, deaths) as JSON.
	Scoreboard datatypes.JSON
	EndedAt    time.Time `gorm:"autoCreateTime"`
}
