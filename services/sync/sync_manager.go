package sync

import (
	"encoding/json"
	"errors"
	"fmt"

	models "Ironsights/models/postgres"
	"Ironsights/services/game"

	"gorm.io/gorm"
)

// SyncManager moves finished-match state from the in-memory session engine
// into PostgreSQL. It implements the coordinator's MatchSink: when a game
// server is deleted, its final scoreboard becomes one MatchResult row plus
// a career-stat update per player.
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// SaveMatchResult persists the final scoreboard of a closed server in one
// transaction.
func (sm *SyncManager) SaveMatchResult(final game.RoomSummary) error {
	scoreboard, err := json.Marshal(final.Players)
	if err != nil {
		return fmt.Errorf("error marshaling scoreboard: %v", err)
	}

	var teamAKills, teamBKills int
	for _, p := range final.Players {
		if p.Team == game.TeamA {
			teamAKills += p.Kills
		} else {
			teamBKills += p.Kills
		}
	}

	return sm.db.Transaction(func(tx *gorm.DB) error {
		result := models.MatchResult{
			ServerID:   final.ID,
			ServerName: final.Name,
			TeamAKills: teamAKills,
			TeamBKills: teamBKills,
			Scoreboard: scoreboard,
		}
		if err := tx.Create(&result).Error; err != nil {
			return fmt.Errorf("error creating match result: %v", err)
		}

		for _, p := range final.Players {
			if err := sm.bumpCareerStats(tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// bumpCareerStats folds one final scoreboard line into the player's
// lifetime counters.
func (sm *SyncManager) bumpCareerStats(tx *gorm.DB, p game.PlayerSummary) error {
	var stats models.PlayerCareerStats
	err := tx.Where("display_name = ?", p.Name).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.PlayerCareerStats{
			DisplayName: p.Name,
			Kills:       p.Kills,
			Deaths:      p.Deaths,
			Matches:     1,
		}
		if err := tx.Create(&stats).Error; err != nil {
			return fmt.Errorf("error creating career stats for %s: %v", p.Name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error loading career stats for %s: %v", p.Name, err)
	}

	stats.Kills += p.Kills
	stats.Deaths += p.Deaths
	stats.Matches++
	if err := tx.Save(&stats).Error; err != nil {
		return fmt.Errorf("error updating career stats for %s: %v", p.Name, err)
	}
	return nil
}
