package handlers

import (
	"log"

	"Ironsights/services/game"
	socketio_types "Ironsights/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinServer puts the connection into the requested game server.
// The success reply (joinedServer) and the room/lobby fan-out are produced
// by the coordinator; only failures are answered here.
func HandleJoinServer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())

		payload, err := socketio_types.ParseJoinServer(args)
		if err != nil {
			log.Printf("[JOIN-ERROR] Malformed joinServer payload from %s: %v", connectionID, args)
			client.Emit("error", gin.H{"event": "joinServer", "error": "malformed payload"})
			return
		}

		if err := coord.Join(connectionID, payload.ServerID, payload.DisplayName); err != nil {
			log.Printf("[JOIN-ERROR] %s could not join server %d: %v", connectionID, payload.ServerID, err)
			client.Emit("error", gin.H{"event": "joinServer", "error": err.Error()})
			return
		}
	}
}

// HandleLeaveServer removes the connection from its current server.
// Idempotent: leaving while not in a server does nothing.
func HandleLeaveServer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		coord.Leave(string(client.Id()), "left")
	}
}

// HandleDisconnecting converges a dropped connection onto the leave path and
// clears the connection registry entry.
func HandleDisconnecting(coord *game.Coordinator, sio *socketio_types.SocketServer, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		connectionID := string(client.Id())
		log.Printf("[DISCONNECT] Connection %s dropped", connectionID)
		coord.Disconnect(connectionID)
		sio.RemoveConnection(connectionID)
	}
}
