package postgres

import "time"

// PlayerCareerStats aggregates a player's lifetime counters across matches,
// keyed by display name (the system has no accounts; names are the only
// stable identity across connections).
type PlayerCareerStats struct {
	DisplayName string `gorm:"primaryKey"`
	Kills       int
	Deaths      int
	Matches     int
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}
