package socketio_types

import (
	"errors"

	"Ironsights/services/game"
)

// Inbound event payloads, one variant per wire event. Socket.io delivers
// arguments as loosely typed maps; these parsers validate shape at the
// boundary so the core only ever sees typed values. Parse errors on
// telemetry-class events are dropped silently by the handlers; on
// request-class events they are answered with an error event.

var errMalformedPayload = errors.New("malformed payload")

type JoinServerPayload struct {
	ServerID    uint64
	DisplayName string
}

type PlayerUpdatePayload struct {
	Position game.Vector3
	Facing   float64
	Weapon   string
}

type PlayerShootPayload struct {
	Weapon string
}

type HitPlayerPayload struct {
	TargetID string
	Damage   int
	Weapon   string
}

type AdminCreateServerPayload struct {
	Secret   string
	Name     string
	Capacity int
}

type AdminServerPayload struct {
	Secret   string
	ServerID uint64
}

type AdminSetCapacityPayload struct {
	Secret   string
	ServerID uint64
	Capacity int
}

type AdminKickPayload struct {
	Secret   string
	ServerID uint64
	TargetID string
}

type AdminListPayload struct {
	Secret string
}

func payloadMap(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	m, ok := args[0].(map[string]interface{})
	return m, ok
}

func getString(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// getNumber accepts the numeric shapes the socket.io parser produces.
func getNumber(m map[string]interface{}, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func getVector3(m map[string]interface{}, key string) (game.Vector3, bool) {
	pos, ok := m[key].(map[string]interface{})
	if !ok {
		return game.Vector3{}, false
	}
	x, okX := getNumber(pos, "x")
	y, okY := getNumber(pos, "y")
	z, okZ := getNumber(pos, "z")
	if !okX || !okY || !okZ {
		return game.Vector3{}, false
	}
	return game.Vector3{X: x, Y: y, Z: z}, true
}

func ParseJoinServer(args []interface{}) (*JoinServerPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	serverID, ok := getNumber(m, "serverId")
	if !ok || serverID < 0 {
		return nil, errMalformedPayload
	}
	name, _ := getString(m, "displayName")
	return &JoinServerPayload{ServerID: uint64(serverID), DisplayName: name}, nil
}

func ParsePlayerUpdate(args []interface{}) (*PlayerUpdatePayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	position, ok := getVector3(m, "position")
	if !ok {
		return nil, errMalformedPayload
	}
	facing, ok := getNumber(m, "facing")
	if !ok {
		return nil, errMalformedPayload
	}
	weapon, _ := getString(m, "weapon")
	return &PlayerUpdatePayload{Position: position, Facing: facing, Weapon: weapon}, nil
}

func ParsePlayerShoot(args []interface{}) (*PlayerShootPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	weapon, ok := getString(m, "weapon")
	if !ok || weapon == "" {
		return nil, errMalformedPayload
	}
	return &PlayerShootPayload{Weapon: weapon}, nil
}

func ParseHitPlayer(args []interface{}) (*HitPlayerPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	targetID, ok := getString(m, "targetId")
	if !ok || targetID == "" {
		return nil, errMalformedPayload
	}
	damage, ok := getNumber(m, "damage")
	if !ok {
		return nil, errMalformedPayload
	}
	weapon, _ := getString(m, "weapon")
	return &HitPlayerPayload{TargetID: targetID, Damage: int(damage), Weapon: weapon}, nil
}

func ParseAdminCreateServer(args []interface{}) (*AdminCreateServerPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	secret, _ := getString(m, "secret")
	name, ok := getString(m, "name")
	if !ok || name == "" {
		return nil, errMalformedPayload
	}
	capacity, _ := getNumber(m, "capacity")
	return &AdminCreateServerPayload{Secret: secret, Name: name, Capacity: int(capacity)}, nil
}

func ParseAdminServer(args []interface{}) (*AdminServerPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	secret, _ := getString(m, "secret")
	serverID, ok := getNumber(m, "serverId")
	if !ok || serverID < 0 {
		return nil, errMalformedPayload
	}
	return &AdminServerPayload{Secret: secret, ServerID: uint64(serverID)}, nil
}

func ParseAdminSetCapacity(args []interface{}) (*AdminSetCapacityPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	secret, _ := getString(m, "secret")
	serverID, ok := getNumber(m, "serverId")
	if !ok || serverID < 0 {
		return nil, errMalformedPayload
	}
	capacity, ok := getNumber(m, "capacity")
	if !ok {
		return nil, errMalformedPayload
	}
	return &AdminSetCapacityPayload{Secret: secret, ServerID: uint64(serverID), Capacity: int(capacity)}, nil
}

func ParseAdminKick(args []interface{}) (*AdminKickPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	secret, _ := getString(m, "secret")
	serverID, ok := getNumber(m, "serverId")
	if !ok || serverID < 0 {
		return nil, errMalformedPayload
	}
	targetID, ok := getString(m, "targetId")
	if !ok || targetID == "" {
		return nil, errMalformedPayload
	}
	return &AdminKickPayload{Secret: secret, ServerID: uint64(serverID), TargetID: targetID}, nil
}

func ParseAdminList(args []interface{}) (*AdminListPayload, error) {
	m, ok := payloadMap(args)
	if !ok {
		return nil, errMalformedPayload
	}
	secret, _ := getString(m, "secret")
	return &AdminListPayload{Secret: secret}, nil
}
