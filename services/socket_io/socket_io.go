package socket_io

import (
	"log"
	"time"

	"Ironsights/services/game"
	"Ironsights/services/socket_io/handlers"
	socketio_types "Ironsights/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the gin router and registers the
// per-connection event surface. The coordinator receives every inbound event
// already tied to the connection id.
func (sio *MySocketServer) Start(router *gin.Engine, coord *game.Coordinator) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to reduce network load and support
	// slower networks.
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Connections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		connectionID := string(client.Id())

		(*socketio_types.SocketServer)(sio).AddConnection(connectionID, client)

		// Every socket listens on the reserved lobby group for serverList
		// updates, and gets the current list right away.
		client.Join(socket.Room(socketio_types.LobbyRoom))
		client.Emit("serverList", gin.H{"servers": coord.ListRooms()})

		log.Printf("[CONNECT] New connection %s (total %d)", connectionID, len(sio.Connections))

		// Session events
		client.On("joinServer", handlers.HandleJoinServer(coord, client))
		client.On("leaveServer", handlers.HandleLeaveServer(coord, client))

		// Telemetry and combat
		client.On("playerUpdate", handlers.HandlePlayerUpdate(coord, client))
		client.On("playerShoot", handlers.HandlePlayerShoot(coord, client))
		client.On("hitPlayer", handlers.HandleHitPlayer(coord, client))

		// Admin surface (shared secret in the payload)
		client.On("createServer", handlers.HandleCreateServer(coord, client))
		client.On("deleteServer", handlers.HandleDeleteServer(coord, client))
		client.On("setCapacity", handlers.HandleSetCapacity(coord, client))
		client.On("kick", handlers.HandleKick(coord, client))
		client.On("listServers", handlers.HandleListServers(coord, client))

		// NOTE: will remove the sio connection from the map
		client.On("disconnecting", handlers.HandleDisconnecting(coord, (*socketio_types.SocketServer)(sio), client))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close shuts the socket server down.
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
