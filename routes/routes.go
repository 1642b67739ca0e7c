package routes

import (
	"net/http"

	"Ironsights/controllers"
	"Ironsights/middleware"
	"Ironsights/services/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires the REST surface. db may be nil when the process runs
// without PostgreSQL; the match-history endpoints are skipped in that case.
func SetupRoutes(r *gin.Engine, coord *game.Coordinator, db *gorm.DB) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public lobby view
	r.GET("/servers", controllers.ListServers(coord))
	r.GET("/servers/:server_id", controllers.GetServerInfo(coord))

	// Persisted match history
	if db != nil {
		r.GET("/matches", controllers.ListMatches(db))
		r.GET("/players/:name/stats", controllers.GetPlayerStats(db))
	}

	// Admin surface, JWT-guarded except for the login exchange
	r.POST("/admin/login", controllers.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuthRequired())
	{
		admin.POST("/servers", controllers.CreateServer(coord))
		admin.DELETE("/servers/:server_id", controllers.DeleteServer(coord))
		admin.PATCH("/servers/:server_id/capacity", controllers.SetServerCapacity(coord))
		admin.POST("/servers/:server_id/kick", controllers.KickPlayer(coord))
	}
}
