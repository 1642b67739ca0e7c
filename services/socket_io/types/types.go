package socketio_types

import (
	"strconv"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// LobbyRoom is the reserved broadcast group every socket joins on connect.
// It carries the global serverList updates.
const LobbyRoom = "lobby"

// SocketServer contains the socket.io server and a map of live connections
// keyed by connection id. It implements the core's Broadcaster interface.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track connectionId -> socket
	Connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
	}
}

func (s *SocketServer) AddConnection(connectionID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[connectionID] = client
}

func (s *SocketServer) RemoveConnection(connectionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, connectionID)
}

func (s *SocketServer) GetConnection(connectionID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.Connections[connectionID]
	return client, exists
}

func roomKey(roomID uint64) socket.Room {
	return socket.Room(strconv.FormatUint(roomID, 10))
}

// SendTo emits a private event to one connection.
func (s *SocketServer) SendTo(connectionID string, event string, payload interface{}) {
	client, exists := s.GetConnection(connectionID)
	if !exists {
		return
	}
	client.Emit(event, payload)
}

// BroadcastToRoom fans an event out to the room's broadcast group,
// optionally excluding one connection (sockets are members of their own
// id-named room, which is what Except keys on).
func (s *SocketServer) BroadcastToRoom(roomID uint64, event string, payload interface{}, exceptConnectionID string) {
	op := s.Sio_server.To(roomKey(roomID))
	if exceptConnectionID != "" {
		op = op.Except(socket.Room(exceptConnectionID))
	}
	op.Emit(event, payload)
}

// BroadcastGlobal emits on the reserved lobby group.
func (s *SocketServer) BroadcastGlobal(event string, payload interface{}) {
	s.Sio_server.To(socket.Room(LobbyRoom)).Emit(event, payload)
}

func (s *SocketServer) Subscribe(connectionID string, roomID uint64) {
	client, exists := s.GetConnection(connectionID)
	if !exists {
		return
	}
	client.Join(roomKey(roomID))
}

func (s *SocketServer) Unsubscribe(connectionID string, roomID uint64) {
	client, exists := s.GetConnection(connectionID)
	if !exists {
		return
	}
	client.Leave(roomKey(roomID))
}
