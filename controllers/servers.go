package controllers

import (
	"errors"
	"net/http"
	"strconv"

	game_constants "Ironsights/constants/game"
	"Ironsights/services/game"

	"github.com/gin-gonic/gin"
)

func parseServerID(c *gin.Context) (uint64, bool) {
	serverID, err := strconv.ParseUint(c.Param("server_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid server id"})
		return 0, false
	}
	return serverID, true
}

// @Summary Lists all game servers
// @Description Returns the redacted lobby view of every active server
// @Tags servers
// @Produce json
// @Success 200 {object} object{servers=[]object}
// @Router /servers [get]
func ListServers(coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"servers": coord.ListRooms()})
	}
}

// @Summary Gives info of a game server
// @Description Given a server id, returns its lobby view
// @Tags servers
// @Produce json
// @Param server_id path integer true "Id of the server"
// @Success 200 {object} object{server=object}
// @Failure 404 {object} object{error=string}
// @Router /servers/{server_id} [get]
func GetServerInfo(coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		serverID, ok := parseServerID(c)
		if !ok {
			return
		}
		summary, err := coord.Registry.Summary(serverID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"server": summary})
	}
}

// @Summary Creates a new game server
// @Description Admin-only. Capacity is clamped to the configured bounds
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{server=object}
// @Failure 400 {object} object{error=string}
// @Router /admin/servers [post]
// @Security ApiKeyAuth
func CreateServer(coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required"`
			Capacity int    `json:"capacity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Server name is required"})
			return
		}
		if req.Capacity == 0 {
			req.Capacity = game_constants.DefaultRoomCapacity
		}
		summary := coord.CreateRoom(req.Name, req.Capacity)
		c.JSON(http.StatusOK, gin.H{"server": summary, "message": "Server created successfully"})
	}
}

// @Summary Deletes a game server
// @Description Admin-only. Every member is evicted and notified
// @Tags admin
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param server_id path integer true "Id of the server"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /admin/servers/{server_id} [delete]
// @Security ApiKeyAuth
func DeleteServer(coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		serverID, ok := parseServerID(c)
		if !ok {
			return
		}
		if err := coord.DeleteRoom(serverID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Server deleted successfully"})
	}
}

// @Summary Changes a server's capacity
// @Description Admin-only. The requested capacity is clamped to the configured bounds
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param server_id path integer true "Id of the server"
// @Success 200 {object} object{capacity=integer}
// @Failure 404 {object} object{error=string}
// @Router /admin/servers/{server_id}/capacity [patch]
// @Security ApiKeyAuth
func SetServerCapacity(coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		serverID, ok := parseServerID(c)
		if !ok {
			return
		}
		var req struct {
			Capacity int `json:"capacity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity is required"})
			return
		}
		clamped, err := coord.SetCapacity(serverID, req.Capacity)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"capacity": clamped})
	}
}

// @Summary Kicks a player from a server
// @Description Admin-only. The player is notified and evicted
// @Tags admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param server_id path integer true "Id of the server"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /admin/servers/{server_id}/kick [post]
// @Security ApiKeyAuth
func KickPlayer(coord *game.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		serverID, ok := parseServerID(c)
		if !ok {
			return
		}
		var req struct {
			TargetID string `json:"targetId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Target id is required"})
			return
		}
		if err := coord.Kick(serverID, req.TargetID); err != nil {
			status := http.StatusNotFound
			if errors.Is(err, game.ErrNotAMember) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Player kicked"})
	}
}
