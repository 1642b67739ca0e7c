package handlers

import (
	"log"

	"Ironsights/services/game"
	socketio_types "Ironsights/services/socket_io/types"
	"Ironsights/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Privileged room-registry operations, driven over the socket with a shared
// admin secret in the payload. The secret check happens here at the boundary;
// the core only ever runs pre-authorized calls.

func emitUnauthorized(client *socket.Socket, event string) {
	log.Printf("[ADMIN-ERROR] Unauthorized %s from %s", event, client.Id())
	client.Emit("error", gin.H{"event": event, "error": game.ErrUnauthorized.Error()})
}

func HandleCreateServer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParseAdminCreateServer(args)
		if err != nil {
			client.Emit("error", gin.H{"event": "createServer", "error": "malformed payload"})
			return
		}
		if !utils.VerifyAdminSecret(payload.Secret) {
			emitUnauthorized(client, "createServer")
			return
		}
		summary := coord.CreateRoom(payload.Name, payload.Capacity)
		client.Emit("serverCreated", gin.H{"server": summary})
	}
}

func HandleDeleteServer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParseAdminServer(args)
		if err != nil {
			client.Emit("error", gin.H{"event": "deleteServer", "error": "malformed payload"})
			return
		}
		if !utils.VerifyAdminSecret(payload.Secret) {
			emitUnauthorized(client, "deleteServer")
			return
		}
		if err := coord.DeleteRoom(payload.ServerID); err != nil {
			client.Emit("error", gin.H{"event": "deleteServer", "error": err.Error()})
			return
		}
		client.Emit("serverDeleted", gin.H{"serverId": payload.ServerID})
	}
}

func HandleSetCapacity(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParseAdminSetCapacity(args)
		if err != nil {
			client.Emit("error", gin.H{"event": "setCapacity", "error": "malformed payload"})
			return
		}
		if !utils.VerifyAdminSecret(payload.Secret) {
			emitUnauthorized(client, "setCapacity")
			return
		}
		clamped, err := coord.SetCapacity(payload.ServerID, payload.Capacity)
		if err != nil {
			client.Emit("error", gin.H{"event": "setCapacity", "error": err.Error()})
			return
		}
		client.Emit("capacitySet", gin.H{"serverId": payload.ServerID, "capacity": clamped})
	}
}

func HandleKick(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParseAdminKick(args)
		if err != nil {
			client.Emit("error", gin.H{"event": "kick", "error": "malformed payload"})
			return
		}
		if !utils.VerifyAdminSecret(payload.Secret) {
			emitUnauthorized(client, "kick")
			return
		}
		if err := coord.Kick(payload.ServerID, payload.TargetID); err != nil {
			client.Emit("error", gin.H{"event": "kick", "error": err.Error()})
			return
		}
		client.Emit("playerKicked", gin.H{"serverId": payload.ServerID, "targetId": payload.TargetID})
	}
}

func HandleListServers(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParseAdminList(args)
		if err != nil {
			client.Emit("error", gin.H{"event": "listServers", "error": "malformed payload"})
			return
		}
		if !utils.VerifyAdminSecret(payload.Secret) {
			emitUnauthorized(client, "listServers")
			return
		}
		client.Emit("serverList", gin.H{"servers": coord.ListRooms()})
	}
}
