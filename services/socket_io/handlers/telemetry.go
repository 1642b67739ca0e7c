package handlers

import (
	"Ironsights/services/game"
	socketio_types "Ironsights/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandlePlayerUpdate relays movement/aim/weapon telemetry to the rest of the
// room. Client-reported and unvalidated by contract; malformed payloads are
// dropped without a reply.
func HandlePlayerUpdate(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParsePlayerUpdate(args)
		if err != nil {
			return
		}
		coord.UpdateTelemetry(string(client.Id()), payload.Position, payload.Facing, payload.Weapon)
	}
}

// HandlePlayerShoot fans a fired-weapon event out to the room. Stateless.
func HandlePlayerShoot(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParsePlayerShoot(args)
		if err != nil {
			return
		}
		coord.NotifyShot(string(client.Id()), payload.Weapon)
	}
}

// HandleHitPlayer applies a reported hit. Hits that do not qualify (wrong
// room, dead target, friendly fire) are silent no-ops inside the resolver.
func HandleHitPlayer(coord *game.Coordinator, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, err := socketio_types.ParseHitPlayer(args)
		if err != nil {
			return
		}
		coord.ApplyHit(string(client.Id()), payload.TargetID, payload.Damage, payload.Weapon)
	}
}
