package controllers

import (
	"net/http"

	models "Ironsights/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Lists recent match results
// @Description Returns the most recent persisted match results, newest first
// @Tags matches
// @Produce json
// @Success 200 {object} object{matches=[]object}
// @Failure 500 {object} object{error=string}
// @Router /matches [get]
func ListMatches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var matches []models.MatchResult
		if err := db.Order("ended_at DESC").Limit(50).Find(&matches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading match results"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": matches})
	}
}

// @Summary Gives a player's career stats
// @Description Lifetime kills/deaths/matches aggregated by display name
// @Tags matches
// @Produce json
// @Param name path string true "Display name of the player"
// @Success 200 {object} object{stats=object}
// @Failure 404 {object} object{error=string}
// @Router /players/{name}/stats [get]
func GetPlayerStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats models.PlayerCareerStats
		result := db.Where("display_name = ?", c.Param("name")).First(&stats)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	}
}
